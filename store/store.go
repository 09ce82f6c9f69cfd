package store

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"restropos-backend/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	SettingsKey = "restropos:settings"
	OrdersKey   = "restropos:orders"
)

// Store owns the AppSettings aggregate and the order log. All mutation goes
// through its methods; handlers hold only ids. Every mutation rewrites the
// touched aggregate through the BlobStore. A failed write is surfaced as a
// warning, never rolled back: the in-memory view stays authoritative for the
// session.
type Store struct {
	mu       sync.Mutex
	blobs    BlobStore
	settings models.AppSettings
	orders   []models.Order

	now func() time.Time
}

// New loads the persisted aggregates, seeding defaults when a blob is absent
// or unreadable.
func New(blobs BlobStore) *Store {
	s := &Store{blobs: blobs, now: time.Now}

	data, found, err := blobs.Load(SettingsKey)
	switch {
	case err != nil:
		log.Printf("settings blob unreadable, seeding defaults: %v", err)
		s.settings = models.DefaultSettings()
	case !found:
		s.settings = models.DefaultSettings()
	default:
		if err := json.Unmarshal(data, &s.settings); err != nil {
			log.Printf("settings blob corrupt, seeding defaults: %v", err)
			s.settings = models.DefaultSettings()
		}
	}

	data, found, err = blobs.Load(OrdersKey)
	if err != nil {
		log.Printf("orders blob unreadable, starting empty: %v", err)
	} else if found {
		if err := json.Unmarshal(data, &s.orders); err != nil {
			log.Printf("orders blob corrupt, starting empty: %v", err)
			s.orders = nil
		}
	}
	return s
}

// persistSettings flushes the aggregate. The returned string is a user-facing
// warning when the write failed, empty otherwise.
func (s *Store) persistSettings() string {
	data, err := json.Marshal(s.settings)
	if err == nil {
		err = s.blobs.Save(SettingsKey, data)
	}
	if err != nil {
		log.Printf("persist settings: %v", err)
		return "change applied but could not be saved: " + err.Error()
	}
	return ""
}

func (s *Store) persistOrders() string {
	data, err := json.Marshal(s.orders)
	if err == nil {
		err = s.blobs.Save(OrdersKey, data)
	}
	if err != nil {
		log.Printf("persist orders: %v", err)
		return "change applied but could not be saved: " + err.Error()
	}
	return ""
}

// Settings returns a read-only snapshot of the aggregate, deep-copied so the
// caller can iterate it after the lock is released.
func (s *Store) Settings() models.AppSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings.Clone()
}

// SettingsUpdate carries the mutable restaurant-level fields. Nil fields are
// left untouched.
type SettingsUpdate struct {
	RestaurantName        *string
	RestaurantAddress     *string
	RestaurantPhone       *string
	VATRate               *decimal.Decimal
	ServiceChargeRate     *decimal.Decimal
	DefaultDeliveryCharge *decimal.Decimal
	Printers              *[]models.Printer
}

// UpdateSettings applies restaurant identity, rate and printer changes.
// Rates must be decimal fractions in [0, 1). Rate changes never touch
// historical orders, which carry their own snapshots.
func (s *Store) UpdateSettings(update SettingsUpdate) (models.AppSettings, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rate := range []*decimal.Decimal{update.VATRate, update.ServiceChargeRate} {
		if rate != nil && (rate.IsNegative() || rate.GreaterThanOrEqual(decimal.NewFromInt(1))) {
			return models.AppSettings{}, "", fmt.Errorf("%w: rate must be in [0, 1)", models.ErrValidation)
		}
	}
	if update.DefaultDeliveryCharge != nil && update.DefaultDeliveryCharge.IsNegative() {
		return models.AppSettings{}, "", fmt.Errorf("%w: delivery charge must not be negative", models.ErrValidation)
	}

	if update.RestaurantName != nil {
		s.settings.RestaurantName = *update.RestaurantName
	}
	if update.RestaurantAddress != nil {
		s.settings.RestaurantAddress = *update.RestaurantAddress
	}
	if update.RestaurantPhone != nil {
		s.settings.RestaurantPhone = *update.RestaurantPhone
	}
	if update.VATRate != nil {
		s.settings.VATRate = *update.VATRate
	}
	if update.ServiceChargeRate != nil {
		s.settings.ServiceChargeRate = *update.ServiceChargeRate
	}
	if update.DefaultDeliveryCharge != nil {
		s.settings.DefaultDeliveryCharge = *update.DefaultDeliveryCharge
	}
	if update.Printers != nil {
		s.settings.Printers = *update.Printers
	}
	return s.settings, s.persistSettings(), nil
}

// --- categories ---

func (s *Store) AddCategory(name string) (models.MenuCategory, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if name == "" {
		return models.MenuCategory{}, "", fmt.Errorf("%w: category name is required", models.ErrValidation)
	}
	category := models.MenuCategory{ID: uuid.New(), Name: name}
	s.settings.Categories = append(s.settings.Categories, category)
	return category, s.persistSettings(), nil
}

func (s *Store) RenameCategory(id uuid.UUID, name string) (models.MenuCategory, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if name == "" {
		return models.MenuCategory{}, "", fmt.Errorf("%w: category name is required", models.ErrValidation)
	}
	for i := range s.settings.Categories {
		if s.settings.Categories[i].ID == id {
			s.settings.Categories[i].Name = name
			return s.settings.Categories[i], s.persistSettings(), nil
		}
	}
	return models.MenuCategory{}, "", fmt.Errorf("%w: category %s", ErrNotFound, id)
}

// DeleteCategory refuses to delete a category still referenced by menu items.
func (s *Store) DeleteCategory(id uuid.UUID) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range s.settings.MenuItems {
		if item.CategoryID == id {
			return "", fmt.Errorf("%w: category is still used by menu item %q", models.ErrValidation, item.Name)
		}
	}
	for i := range s.settings.Categories {
		if s.settings.Categories[i].ID == id {
			s.settings.Categories = append(s.settings.Categories[:i], s.settings.Categories[i+1:]...)
			return s.persistSettings(), nil
		}
	}
	return "", fmt.Errorf("%w: category %s", ErrNotFound, id)
}

// --- menu items ---

type MenuItemInput struct {
	Name        string
	Price       decimal.Decimal
	CategoryID  uuid.UUID
	Description string
	Recipe      string
	ImageURL    string
}

func (s *Store) AddMenuItem(input MenuItemInput) (models.MenuItem, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.categoryExists(input.CategoryID) {
		return models.MenuItem{}, "", fmt.Errorf("%w: category %s", ErrNotFound, input.CategoryID)
	}
	item, err := models.NewMenuItem(input.Name, input.Price, input.CategoryID)
	if err != nil {
		return models.MenuItem{}, "", err
	}
	item.Description = input.Description
	item.Recipe = input.Recipe
	item.ImageURL = input.ImageURL
	s.settings.MenuItems = append(s.settings.MenuItems, item)
	return item, s.persistSettings(), nil
}

// MenuItemUpdate carries optional edits; historical orders keep their own
// snapshots and are never affected.
type MenuItemUpdate struct {
	Name        *string
	Price       *decimal.Decimal
	CategoryID  *uuid.UUID
	Description *string
	Recipe      *string
	ImageURL    *string
	IsActive    *bool
}

func (s *Store) UpdateMenuItem(id uuid.UUID, update MenuItemUpdate) (models.MenuItem, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := s.findMenuItem(id)
	if item == nil {
		return models.MenuItem{}, "", fmt.Errorf("%w: menu item %s", ErrNotFound, id)
	}
	if update.Price != nil && update.Price.IsNegative() {
		return models.MenuItem{}, "", fmt.Errorf("%w: menu item price must not be negative", models.ErrValidation)
	}
	if update.CategoryID != nil && !s.categoryExists(*update.CategoryID) {
		return models.MenuItem{}, "", fmt.Errorf("%w: category %s", ErrNotFound, *update.CategoryID)
	}
	if update.Name != nil {
		if *update.Name == "" {
			return models.MenuItem{}, "", fmt.Errorf("%w: menu item name is required", models.ErrValidation)
		}
		item.Name = *update.Name
	}
	if update.Price != nil {
		item.Price = *update.Price
	}
	if update.CategoryID != nil {
		item.CategoryID = *update.CategoryID
	}
	if update.Description != nil {
		item.Description = *update.Description
	}
	if update.Recipe != nil {
		item.Recipe = *update.Recipe
	}
	if update.ImageURL != nil {
		item.ImageURL = *update.ImageURL
	}
	if update.IsActive != nil {
		item.IsActive = *update.IsActive
	}
	return *item, s.persistSettings(), nil
}

func (s *Store) DeleteMenuItem(id uuid.UUID) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.settings.MenuItems {
		if s.settings.MenuItems[i].ID == id {
			s.settings.MenuItems = append(s.settings.MenuItems[:i], s.settings.MenuItems[i+1:]...)
			return s.persistSettings(), nil
		}
	}
	return "", fmt.Errorf("%w: menu item %s", ErrNotFound, id)
}

func (s *Store) categoryExists(id uuid.UUID) bool {
	for _, c := range s.settings.Categories {
		if c.ID == id {
			return true
		}
	}
	return false
}

func (s *Store) findMenuItem(id uuid.UUID) *models.MenuItem {
	for i := range s.settings.MenuItems {
		if s.settings.MenuItems[i].ID == id {
			return &s.settings.MenuItems[i]
		}
	}
	return nil
}

// --- users ---

type UserInput struct {
	Name       string
	Role       models.Role
	Phone      string
	HourlyRate *decimal.Decimal
}

func (s *Store) AddUser(input UserInput) (models.UserAccount, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := models.NewUserAccount(input.Name, input.Role)
	if err != nil {
		return models.UserAccount{}, "", err
	}
	if input.HourlyRate != nil && input.HourlyRate.IsNegative() {
		return models.UserAccount{}, "", fmt.Errorf("%w: hourly rate must not be negative", models.ErrValidation)
	}
	user.Phone = input.Phone
	user.HourlyRate = input.HourlyRate
	s.settings.Users = append(s.settings.Users, user)
	return user, s.persistSettings(), nil
}

type UserUpdate struct {
	Name       *string
	Role       *models.Role
	Phone      *string
	HourlyRate *decimal.Decimal
	IsActive   *bool
}

func (s *Store) UpdateUser(id uuid.UUID, update UserUpdate) (models.UserAccount, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.findUser(id)
	if user == nil {
		return models.UserAccount{}, "", fmt.Errorf("%w: user %s", ErrNotFound, id)
	}
	if update.Role != nil && !models.ValidRole(*update.Role) {
		return models.UserAccount{}, "", fmt.Errorf("%w: unknown role %q", models.ErrValidation, *update.Role)
	}
	if update.HourlyRate != nil && update.HourlyRate.IsNegative() {
		return models.UserAccount{}, "", fmt.Errorf("%w: hourly rate must not be negative", models.ErrValidation)
	}
	if update.Name != nil {
		if *update.Name == "" {
			return models.UserAccount{}, "", fmt.Errorf("%w: user name is required", models.ErrValidation)
		}
		user.Name = *update.Name
	}
	if update.Role != nil {
		user.Role = *update.Role
	}
	if update.Phone != nil {
		user.Phone = *update.Phone
	}
	if update.HourlyRate != nil {
		user.HourlyRate = update.HourlyRate
	}
	if update.IsActive != nil {
		user.IsActive = *update.IsActive
	}
	return *user, s.persistSettings(), nil
}

// DeleteUser removes the account and nulls the waiter reference on every
// table that pointed at it. Time logs keep the name/role snapshot taken at
// check-in.
func (s *Store) DeleteUser(id uuid.UUID) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	for i := range s.settings.Users {
		if s.settings.Users[i].ID == id {
			s.settings.Users = append(s.settings.Users[:i], s.settings.Users[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		return "", fmt.Errorf("%w: user %s", ErrNotFound, id)
	}
	for i := range s.settings.Tables {
		if s.settings.Tables[i].WaiterID != nil && *s.settings.Tables[i].WaiterID == id {
			s.settings.Tables[i].WaiterID = nil
		}
	}
	return s.persistSettings(), nil
}

func (s *Store) findUser(id uuid.UUID) *models.UserAccount {
	for i := range s.settings.Users {
		if s.settings.Users[i].ID == id {
			return &s.settings.Users[i]
		}
	}
	return nil
}
