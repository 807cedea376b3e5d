package inventory

import (
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

const (
	productBucketName = "products"
	scanBucketName    = "scans"
)

// DB defines the interface for database operations
type DB interface {
	// SaveProduct saves a product to the database
	SaveProduct(product *Product) error

	// GetProduct retrieves a product by ID
	GetProduct(id string) (*Product, error)

	// ListProducts returns all products
	ListProducts() ([]*Product, error)

	// DeleteProduct removes a product from the database
	DeleteProduct(id string) error

	// SaveScan saves a receipt scan to the database
	SaveScan(scan *ReceiptScan) error

	// GetScan retrieves a receipt scan by ID
	GetScan(id string) (*ReceiptScan, error)

	// ListScans returns all receipt scans
	ListScans() ([]*ReceiptScan, error)

	// DeleteScan removes a receipt scan from the database
	DeleteScan(id string) error

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
		if _, err := tx.CreateBucketIfNotExists([]byte(productBucketName)); err != nil {
			return err
		}
		if _, err := tx.CreateBucketIfNotExists([]byte(scanBucketName)); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating buckets: %w", err)
	}

	return &BoltDB{db: db}, nil
}

// SaveProduct saves a product to the database
func (b *BoltDB) SaveProduct(product *Product) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(productBucketName))
		data, err := json.Marshal(product)
		if err != nil {
			return fmt.Errorf("marshaling product: %w", err)
		}
		return bucket.Put([]byte(product.ID), data)
	})
}

// GetProduct retrieves a product by ID
func (b *BoltDB) GetProduct(id string) (*Product, error) {
	var product *Product
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(productBucketName))
		data := bucket.Get([]byte(id))
		if data == nil {
			return fmt.Errorf("product not found: %s", id)
		}
		return json.Unmarshal(data, &product)
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

// ListProducts returns all products
func (b *BoltDB) ListProducts() ([]*Product, error) {
	products := make([]*Product, 0)
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(productBucketName))
		return bucket.ForEach(func(k, v []byte) error {
			var product Product
			if err := json.Unmarshal(v, &product); err != nil {
				return fmt.Errorf("unmarshaling product: %w", err)
			}
			products = append(products, &product)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return products, nil
}

// DeleteProduct removes a product from the database
func (b *BoltDB) DeleteProduct(id string) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(productBucketName))
		return bucket.Delete([]byte(id))
	})
}

// SaveScan saves a receipt scan to the database
func (b *BoltDB) SaveScan(scan *ReceiptScan) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(scanBucketName))
		data, err := json.Marshal(scan)
		if err != nil {
			return fmt.Errorf("marshaling scan: %w", err)
		}
		return bucket.Put([]byte(scan.ID), data)
	})
}

// GetScan retrieves a receipt scan by ID
func (b *BoltDB) GetScan(id string) (*ReceiptScan, error) {
	var scan *ReceiptScan
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(scanBucketName))
		data := bucket.Get([]byte(id))
		if data == nil {
			return fmt.Errorf("scan not found: %s", id)
		}
		return json.Unmarshal(data, &scan)
	})
	if err != nil {
		return nil, err
	}
	return scan, nil
}

// ListScans returns all receipt scans
func (b *BoltDB) ListScans() ([]*ReceiptScan, error) {
	scans := make([]*ReceiptScan, 0)
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(scanBucketName))
		return bucket.ForEach(func(k, v []byte) error {
			var scan ReceiptScan
			if err := json.Unmarshal(v, &scan); err != nil {
				return fmt.Errorf("unmarshaling scan: %w", err)
			}
			scans = append(scans, &scan)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return scans, nil
}

// DeleteScan removes a receipt scan from the database
func (b *BoltDB) DeleteScan(id string) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(scanBucketName))
		return bucket.Delete([]byte(id))
	})
}

// Close closes the database connection
func (b *BoltDB) Close() error {
	return b.db.Close()
}
