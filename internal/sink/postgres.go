package sink

import (
	"github.com/shopspring/decimal"

	"main/internal/vwap"
	"main/pkg/conn"
)

// VWAPRow is the persisted form of one flush row.
type VWAPRow struct {
	ID     uint64          `gorm:"primaryKey;autoIncrement"`
	Window string          `gorm:"index"`
	Symbol string          `gorm:"index"`
	VWAP   decimal.Decimal `gorm:"type:numeric"`
}

// TableName fixes the table name independent of gorm pluralization.
func (VWAPRow) TableName() string {
	return "vwap_hourly"
}

// PostgresSink batch-inserts each flush into a postgres table.
type PostgresSink struct {
	client *conn.Client
}

// NewPostgres connects and migrates the target table.
func NewPostgres(option conn.Option) (*PostgresSink, error) {
	client, err := conn.New(option)
	if err != nil {
		return nil, err
	}
	if err := client.DB().AutoMigrate(&VWAPRow{}); err != nil {
		_ = client.Close()
		return nil, err
	}
	return &PostgresSink{client: client}, nil
}

// WriteRows inserts the flush rows in one batch.
func (s *PostgresSink) WriteRows(label string, rows []vwap.Row) error {
	if len(rows) == 0 {
		return nil
	}
	records := make([]VWAPRow, 0, len(rows))
	for _, row := range rows {
		records = append(records, VWAPRow{
			Window: label,
			Symbol: row.Symbol,
			VWAP:   row.VWAP,
		})
	}
	return s.client.DB().Create(&records).Error
}

// Close releases the connection pool.
func (s *PostgresSink) Close() error {
	return s.client.Close()
}
