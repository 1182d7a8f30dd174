package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/spolyakova/book-catalog/internal/logger"
	"github.com/spolyakova/book-catalog/internal/models"
)

// Pagination bounds for the popular listing.
const (
	minPageSize = 1
	maxPageSize = 100
)

// Error variables
var (
	ErrBookNotFound         = errors.New("book not found")
	ErrEmptyBookList        = errors.New("no books provided")
	ErrEmptyIDList          = errors.New("no book ids provided")
	ErrMissingTitleOrAuthor = errors.New("each book must have a title and author")
	ErrInvalidPageNumber    = errors.New("page number must be greater than or equal to 1")
	ErrInvalidPageSize      = errors.New("page size must be between 1 and 100")
)

// BookAlreadyExistsError reports the (title, author) pair that caused a
// bulk create batch to be rejected.
type BookAlreadyExistsError struct {
	Title  string
	Author string
}

func (e *BookAlreadyExistsError) Error() string {
	return fmt.Sprintf("book %q by %s already exists", e.Title, e.Author)
}

// BookReader defines read-only operations for books.
type BookReader interface {
	GetByID(ctx context.Context, id int64) (*models.BookDB, error)
	GetByTitleAndAuthor(ctx context.Context, title, author string) (*models.BookDB, error)
	List(ctx context.Context) ([]models.BookDB, error)
	ListByIDs(ctx context.Context, ids []int64) ([]models.BookDB, error)
	ListPopular(ctx context.Context, offset, limit int) ([]models.BookTitleDB, error)
}

// BookWriter defines write operations for books.
type BookWriter interface {
	Save(ctx context.Context, book models.BookDB) (int64, error)
	SaveAll(ctx context.Context, books []models.BookDB) ([]models.BookDB, error)
	Update(ctx context.Context, book models.BookDB) (int64, error)
	Delete(ctx context.Context, id int64) error
	DeleteMany(ctx context.Context, ids []int64) (int64, error)
	IncrementViews(ctx context.Context, id int64) (int64, error)
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// BookService handles catalog operations and Kafka publishing.
type BookService struct {
	readRepo    BookReader
	writeRepo   BookWriter
	kafkaWriter KafkaWriter
}

// NewBookService creates a new BookService.
func NewBookService(readRepo BookReader, writeRepo BookWriter, kafkaWriter KafkaWriter) *BookService {
	return &BookService{
		readRepo:    readRepo,
		writeRepo:   writeRepo,
		kafkaWriter: kafkaWriter,
	}
}

// publishEvent publishes a catalog event to Kafka.
func (s *BookService) publishEvent(ctx context.Context, event models.BookEvent) {
	if s.kafkaWriter == nil {
		logger.Log.Debugw("Kafka writer not configured, skipping publishing", "operation", event.Operation)
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("failed to marshal event", "event_id", event.EventID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.EventID),
		Value: data,
	}

	if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("failed to publish event", "event_id", event.EventID, "error", err)
	} else {
		logger.Log.Infow("event published", "event_id", event.EventID, "operation", event.Operation, "book_id", event.BookID)
	}
}

func newBookEvent(bookID int64, operation string, viewCount int64) models.BookEvent {
	return models.BookEvent{
		EventID:   uuid.NewString(),
		Timestamp: time.Now().Unix(),
		BookID:    bookID,
		Operation: operation,
		ViewCount: viewCount,
	}
}

// popularity computes the ranking metric viewCount / (yearsSince / 10.0),
// falling back to 1 when the view count or years-since term is zero.
func popularity(viewCount int64, yearPublished int) float64 {
	yearsSince := time.Now().Year() - yearPublished
	if viewCount == 0 || yearsSince == 0 {
		return 1
	}
	return float64(viewCount) / (float64(yearsSince) / 10.0)
}

// List returns every book record.
func (s *BookService) List(ctx context.Context) ([]models.BookDB, error) {
	books, err := s.readRepo.List(ctx)
	if err != nil {
		logger.Log.Errorw("failed to list books", "error", err)
		return nil, err
	}
	return books, nil
}

// Get looks up one book, bumps its view counter by exactly one and returns
// the projection with the popularity score computed from the new count.
func (s *BookService) Get(ctx context.Context, id int64) (*models.BookDetails, error) {
	book, err := s.readRepo.GetByID(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to get book", "id", id, "error", err)
		return nil, err
	}
	if book == nil {
		return nil, ErrBookNotFound
	}

	viewCount, err := s.writeRepo.IncrementViews(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to increment view count", "id", id, "error", err)
		return nil, err
	}

	s.publishEvent(ctx, newBookEvent(id, "viewed", viewCount))

	return &models.BookDetails{
		ID:         book.ID,
		Title:      book.Title,
		Author:     book.Author,
		ViewCount:  viewCount,
		Popularity: popularity(viewCount, book.YearPublished),
	}, nil
}

// Create inserts one book as given, including any client-supplied view count.
func (s *BookService) Create(ctx context.Context, book models.BookDB) (*models.BookDB, error) {
	id, err := s.writeRepo.Save(ctx, book)
	if err != nil {
		logger.Log.Errorw("failed to save book", "title", book.Title, "error", err)
		return nil, err
	}
	book.ID = id

	s.publishEvent(ctx, newBookEvent(id, "created", book.ViewCount))

	return &book, nil
}

// Update fully replaces the book with the given id.
// Returns ErrBookNotFound when no row matches.
func (s *BookService) Update(ctx context.Context, book models.BookDB) error {
	rows, err := s.writeRepo.Update(ctx, book)
	if err != nil {
		logger.Log.Errorw("failed to update book", "id", book.ID, "error", err)
		return err
	}
	if rows == 0 {
		return ErrBookNotFound
	}

	s.publishEvent(ctx, newBookEvent(book.ID, "updated", book.ViewCount))

	return nil
}

// Delete removes the book with the given id.
// Returns ErrBookNotFound when no such book exists.
func (s *BookService) Delete(ctx context.Context, id int64) error {
	book, err := s.readRepo.GetByID(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to get book", "id", id, "error", err)
		return err
	}
	if book == nil {
		return ErrBookNotFound
	}

	if err := s.writeRepo.Delete(ctx, id); err != nil {
		logger.Log.Errorw("failed to delete book", "id", id, "error", err)
		return err
	}

	s.publishEvent(ctx, newBookEvent(id, "deleted", 0))

	return nil
}

// BulkDelete removes all books whose ids match. Ids with no matching record
// are silently ignored; a batch matching nothing is ErrBookNotFound.
func (s *BookService) BulkDelete(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return ErrEmptyIDList
	}

	books, err := s.readRepo.ListByIDs(ctx, ids)
	if err != nil {
		logger.Log.Errorw("failed to list books by ids", "error", err)
		return err
	}
	if len(books) == 0 {
		return ErrBookNotFound
	}

	matched := make([]int64, 0, len(books))
	for _, book := range books {
		matched = append(matched, book.ID)
	}

	if _, err := s.writeRepo.DeleteMany(ctx, matched); err != nil {
		logger.Log.Errorw("failed to bulk delete books", "error", err)
		return err
	}

	for _, id := range matched {
		s.publishEvent(ctx, newBookEvent(id, "deleted", 0))
	}

	return nil
}

// BulkCreate validates every item, rejects the whole batch on a missing
// field or a duplicate (title, author) pair, and otherwise inserts all
// items inside one transaction. A failed insert or commit persists nothing.
func (s *BookService) BulkCreate(ctx context.Context, books []models.BookDB) ([]models.BookDB, error) {
	if len(books) == 0 {
		return nil, ErrEmptyBookList
	}

	for _, book := range books {
		if book.Title == "" || book.Author == "" {
			return nil, ErrMissingTitleOrAuthor
		}

		existing, err := s.readRepo.GetByTitleAndAuthor(ctx, book.Title, book.Author)
		if err != nil {
			logger.Log.Errorw("failed to check for duplicate book", "title", book.Title, "error", err)
			return nil, err
		}
		if existing != nil {
			return nil, &BookAlreadyExistsError{Title: book.Title, Author: book.Author}
		}
	}

	created, err := s.writeRepo.SaveAll(ctx, books)
	if err != nil {
		logger.Log.Errorw("bulk create failed", "count", len(books), "error", err)
		return nil, err
	}

	for _, book := range created {
		s.publishEvent(ctx, newBookEvent(book.ID, "created", book.ViewCount))
	}

	return created, nil
}

// Popular returns a page of book titles ordered by descending view count.
func (s *BookService) Popular(ctx context.Context, pageNumber, pageSize int) ([]models.BookTitleDB, error) {
	if pageNumber < 1 {
		return nil, ErrInvalidPageNumber
	}
	if pageSize < minPageSize || pageSize > maxPageSize {
		return nil, ErrInvalidPageSize
	}

	titles, err := s.readRepo.ListPopular(ctx, (pageNumber-1)*pageSize, pageSize)
	if err != nil {
		logger.Log.Errorw("failed to list popular books", "error", err)
		return nil, err
	}

	return titles, nil
}
