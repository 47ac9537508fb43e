package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

const itemsPath = "/food-items"

// FoodItem mirrors the API representation of a food item.
type FoodItem struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	CreatedAt   *time.Time      `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time      `json:"updatedAt,omitempty"`
}

// ItemInput is the request body for add and update calls. Nil fields are
// omitted, so an update only touches the fields that are set.
type ItemInput struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Quantity    *int             `json:"quantity,omitempty"`
}

// APIError is returned when the server answers with a non-2xx status.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api error %d %s: %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Store keeps a local, ordered copy of the server's food item collection.
// Mutations are applied locally only after the server confirms them; a failed
// call is logged and leaves the local state untouched.
type Store struct {
	baseURL    string
	httpClient *http.Client
	logger     *log.Logger

	mu       sync.RWMutex
	items    []FoodItem
	selected *uint
}

// Option customizes a Store.
type Option func(*Store)

// WithHTTPClient sets the HTTP client used for API calls.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Store) { s.httpClient = c }
}

// WithLogger sets the logger that receives failure messages.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// NewStore creates a Store for the API rooted at baseURL, e.g.
// "http://localhost:8080/api".
func NewStore(baseURL string, opts ...Option) *Store {
	s := &Store{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
		logger:     log.Default(),
		items:      []FoodItem{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Items returns a copy of the local collection.
func (s *Store) Items() []FoodItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]FoodItem, len(s.items))
	copy(out, s.items)
	return out
}

// Select marks the item with id as selected. The selection is local only.
func (s *Store) Select(id uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = &id
}

// ClearSelection drops the current selection.
func (s *Store) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = nil
}

// Selected returns the selected item if it is still in the collection.
func (s *Store) Selected() (FoodItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selected == nil {
		return FoodItem{}, false
	}
	if i := s.indexOf(*s.selected); i >= 0 {
		return s.items[i], true
	}
	return FoodItem{}, false
}

// FetchItems replaces the local collection with the server's.
func (s *Store) FetchItems(ctx context.Context) error {
	var items []FoodItem
	if err := s.do(ctx, http.MethodGet, itemsPath, nil, http.StatusOK, &items); err != nil {
		s.logger.Printf("fetch food items: %v", err)
		return err
	}
	if items == nil {
		items = []FoodItem{}
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
	return nil
}

// AddItem creates an item on the server and appends the stored result.
func (s *Store) AddItem(ctx context.Context, input ItemInput) (FoodItem, error) {
	var item FoodItem
	if err := s.do(ctx, http.MethodPost, itemsPath, input, http.StatusCreated, &item); err != nil {
		s.logger.Printf("add food item: %v", err)
		return FoodItem{}, err
	}

	s.mu.Lock()
	s.items = append(s.items, item)
	s.mu.Unlock()
	return item, nil
}

// UpdateItem updates an item on the server and replaces the local element
// with the server's version. Items missing locally are not inserted.
func (s *Store) UpdateItem(ctx context.Context, id uint, input ItemInput) (FoodItem, error) {
	var item FoodItem
	if err := s.do(ctx, http.MethodPut, itemPath(id), input, http.StatusOK, &item); err != nil {
		s.logger.Printf("update food item %d: %v", id, err)
		return FoodItem{}, err
	}

	s.mu.Lock()
	if i := s.indexOf(id); i >= 0 {
		s.items[i] = item
	}
	s.mu.Unlock()
	return item, nil
}

// DeleteItem deletes an item on the server and removes it locally.
func (s *Store) DeleteItem(ctx context.Context, id uint) error {
	if err := s.do(ctx, http.MethodDelete, itemPath(id), nil, http.StatusNoContent, nil); err != nil {
		s.logger.Printf("delete food item %d: %v", id, err)
		return err
	}

	s.mu.Lock()
	if i := s.indexOf(id); i >= 0 {
		s.items = append(s.items[:i:i], s.items[i+1:]...)
	}
	s.mu.Unlock()
	return nil
}

// indexOf must be called with s.mu held.
func (s *Store) indexOf(id uint) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

func itemPath(id uint) string {
	return itemsPath + "/" + strconv.FormatUint(uint64(id), 10)
}

func (s *Store) do(ctx context.Context, method, path string, body interface{}, want int, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil || len(data) == 0 {
		return apiErr
	}
	var body struct {
		Error   string `json:"error"`
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if json.Unmarshal(data, &body) == nil {
		apiErr.Code = body.Code
		switch {
		case body.Error != "":
			apiErr.Message = body.Error
		case body.Message != "":
			apiErr.Message = body.Message
		}
	}
	return apiErr
}
