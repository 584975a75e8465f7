package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/hidenkeys/hotelres/apperror"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
	"time"
)

// Collection names for the three persisted snapshots.
const (
	Rooms        = "rooms"
	Guests       = "guests"
	Reservations = "reservations"
)

// Snapshot is one whole collection as it should be written.
type Snapshot struct {
	Name  string
	Items any
}

// Saver is what the in-memory collections need from the gateway.
type Saver interface {
	Save(ctx context.Context, snapshots ...Snapshot) error
}

// snapshot is the row holding one collection.
type snapshot struct {
	Name      string `gorm:"primaryKey;size:64"`
	Data      datatypes.JSON
	UpdatedAt time.Time
}

func (snapshot) TableName() string { return "snapshots" }

// Gateway stores every collection as a single JSON blob keyed by name in a
// local SQLite file. Each Save replaces the listed collections entirely.
type Gateway struct {
	db  *gorm.DB
	log *zap.Logger
}

// ConnectDB opens (creating if needed) the SQLite file at path and migrates
// the snapshots table.
func ConnectDB(path string, level logger.LogLevel, log *zap.Logger) (*Gateway, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", apperror.ErrPersistence, path, err)
	}

	if err := db.AutoMigrate(&snapshot{}); err != nil {
		return nil, fmt.Errorf("%w: migrate: %v", apperror.ErrPersistence, err)
	}

	log.Info("connected to db", zap.String("path", path))
	return &Gateway{db: db, log: log}, nil
}

// Save writes all given snapshots in one transaction, so either every
// collection is replaced or none is.
func (g *Gateway) Save(ctx context.Context, snapshots ...Snapshot) error {
	rows := make([]snapshot, 0, len(snapshots))
	for _, s := range snapshots {
		data, err := json.Marshal(s.Items)
		if err != nil {
			return fmt.Errorf("%w: encode %s: %v", apperror.ErrPersistence, s.Name, err)
		}
		rows = append(rows, snapshot{Name: s.Name, Data: datatypes.JSON(data)})
	}

	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range rows {
			if result := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&rows[i]); result.Error != nil {
				return result.Error
			}
		}
		return nil
	})
	if err != nil {
		g.log.Error("save failed", zap.Strings("collections", names(snapshots)), zap.Error(err))
		return fmt.Errorf("%w: save: %v", apperror.ErrPersistence, err)
	}

	g.log.Debug("saved", zap.Strings("collections", names(snapshots)))
	return nil
}

// read returns the raw blob for name, or nil when none has been written.
func (g *Gateway) read(ctx context.Context, name string) ([]byte, error) {
	var row snapshot
	result := g.db.WithContext(ctx).Where("name = ?", name).Limit(1).Find(&row)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return row.Data, nil
}

// Close releases the underlying connection pool.
func (g *Gateway) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// LoadCollection returns the items stored under name. A missing snapshot
// yields an empty slice. Read and decode failures are logged and also yield
// an empty slice; they are never returned to the caller.
func LoadCollection[T any](ctx context.Context, g *Gateway, name string) []T {
	items := []T{}

	data, err := g.read(ctx, name)
	if err != nil {
		g.log.Error("load failed, starting empty", zap.String("collection", name), zap.Error(err))
		return items
	}
	if len(data) == 0 {
		return items
	}

	if err := json.Unmarshal(data, &items); err != nil {
		g.log.Error("decode failed, starting empty", zap.String("collection", name), zap.Error(err))
		return []T{}
	}
	return items
}

func names(snapshots []Snapshot) []string {
	out := make([]string, len(snapshots))
	for i, s := range snapshots {
		out[i] = s.Name
	}
	return out
}
