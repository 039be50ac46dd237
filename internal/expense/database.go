package expense

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.etcd.io/bbolt"
)

const (
	bucketName       = "expenses"
	budgetBucketName = "budgets"
)

// ErrNotFound is returned when no expense or budget has the requested key
var ErrNotFound = errors.New("not found")

// DB defines the interface for database operations
type DB interface {
	// SaveExpense saves an expense to the database
	SaveExpense(expense *Expense) error

	// GetExpense retrieves an expense by ID
	GetExpense(id string) (*Expense, error)

	// ListExpenses returns the expenses of one user, newest first
	ListExpenses(email string) ([]*Expense, error)

	// DeleteExpense removes an expense from the database
	DeleteExpense(id string) error

	// SaveBudget stores the budget of one user, replacing any previous one
	SaveBudget(budget *Budget) error

	// GetBudget retrieves the budget of one user
	GetBudget(email string) (*Budget, error)

	// Close closes the database connection
	Close() error
}

// BoltDB implements the DB interface using BoltDB
type BoltDB struct {
	db *bbolt.DB
}

// NewBoltDB creates a new BoltDB instance
func NewBoltDB(path string) (*BoltDB, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening boltdb: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range []string{bucketName, budgetBucketName} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating buckets: %w", err)
	}

	return &BoltDB{db: db}, nil
}

// SaveExpense saves an expense to the database
func (b *BoltDB) SaveExpense(expense *Expense) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketName))
		data, err := json.Marshal(expense)
		if err != nil {
			return fmt.Errorf("marshaling expense: %w", err)
		}
		return bucket.Put([]byte(expense.ID), data)
	})
}

// GetExpense retrieves an expense by ID
func (b *BoltDB) GetExpense(id string) (*Expense, error) {
	var expense *Expense
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketName))
		data := bucket.Get([]byte(id))
		if data == nil {
			return fmt.Errorf("%w: expense %s", ErrNotFound, id)
		}
		return json.Unmarshal(data, &expense)
	})
	if err != nil {
		return nil, err
	}
	return expense, nil
}

// ListExpenses returns the expenses submitted by email, newest first
func (b *BoltDB) ListExpenses(email string) ([]*Expense, error) {
	expenses := make([]*Expense, 0)
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketName))
		return bucket.ForEach(func(k, v []byte) error {
			var expense Expense
			if err := json.Unmarshal(v, &expense); err != nil {
				return fmt.Errorf("unmarshaling expense: %w", err)
			}
			if expense.Email == email {
				expenses = append(expenses, &expense)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sortNewestFirst(expenses)
	return expenses, nil
}

// DeleteExpense removes an expense from the database
func (b *BoltDB) DeleteExpense(id string) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketName))
		return bucket.Delete([]byte(id))
	})
}

// SaveBudget stores a budget keyed by the user's email
func (b *BoltDB) SaveBudget(budget *Budget) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(budgetBucketName))
		data, err := json.Marshal(budget)
		if err != nil {
			return fmt.Errorf("marshaling budget: %w", err)
		}
		return bucket.Put([]byte(budget.Email), data)
	})
}

// GetBudget retrieves the budget of a user
func (b *BoltDB) GetBudget(email string) (*Budget, error) {
	var budget *Budget
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(budgetBucketName))
		data := bucket.Get([]byte(email))
		if data == nil {
			return fmt.Errorf("%w: budget for %s", ErrNotFound, email)
		}
		return json.Unmarshal(data, &budget)
	})
	if err != nil {
		return nil, err
	}
	return budget, nil
}

// Close closes the database connection
func (b *BoltDB) Close() error {
	return b.db.Close()
}

// sortNewestFirst orders by creation time descending, then by ID
func sortNewestFirst(expenses []*Expense) {
	sort.SliceStable(expenses, func(i, j int) bool {
		if !expenses[i].CreatedAt.Equal(expenses[j].CreatedAt) {
			return expenses[i].CreatedAt.After(expenses[j].CreatedAt)
		}
		return expenses[i].ID < expenses[j].ID
	})
}
