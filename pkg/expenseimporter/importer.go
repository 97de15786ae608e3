package expenseimporter

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
)

// Summary is the outcome of one import run. Skipped counts records filtered
// out by the watermark; Failed counts records that could not be parsed or
// whose transaction upsert failed.
type Summary struct {
	Total     int
	Succeeded int
	Failed    int
	Skipped   int
}

func NewTransactionImporter(store Store, rows []map[string]string, force bool, log *logrus.Logger) *TransactionImporter {
	return &TransactionImporter{
		store: store,
		rows:  rows,
		force: force,
		log:   log,
	}
}

// TransactionImporter drives one ingestion run: read the watermark,
// normalize every row, filter by date, upsert each record and its lookup
// entities in input order, then advance the watermark.
type TransactionImporter struct {
	store Store
	rows  []map[string]string
	force bool
	log   *logrus.Logger
}

func (importer *TransactionImporter) Import(ctx context.Context) (Summary, error) {
	summary := Summary{Total: len(importer.rows)}

	lastUpload, hasWatermark, err := importer.store.LastUploadDate(ctx)
	if err != nil {
		// An unreadable watermark means every record is eligible.
		importer.log.WithError(err).Warn("Failed to read last upload date, processing all records")
		hasWatermark = false
	} else if !hasWatermark {
		importer.log.Info("No previous uploads found.")
	}

	// Materialize every row up front so the total count and the last row's
	// date are known before anything is written.
	records := make([]*Transaction, 0, len(importer.rows))

	for _, row := range importer.rows {
		record, err := NormalizeRow(row)
		if err != nil {
			summary.Failed++
			importer.log.WithError(err).Error("Error parsing record")

			continue
		}

		records = append(records, record)
	}

	importer.log.Infof("Found %d records in the CSV file.", len(records))

	for i, record := range records {
		if !importer.force && hasWatermark {
			recordDate, err := parseISODate(record.DateISO)
			if err != nil {
				summary.Failed++
				importer.log.WithError(err).Error("Error parsing record date")

				continue
			}

			if !ShouldUpload(recordDate, lastUpload) {
				summary.Skipped++
				continue
			}
		}

		if err := importer.handleRecord(ctx, record); err != nil {
			summary.Failed++
			importer.log.WithError(err).Error("Error processing record")

			continue
		}

		summary.Succeeded++
		importer.log.Infof("Processed record %d/%d", i+1, len(records))
	}

	importer.log.Infof("Uploaded %d records successfully.", summary.Succeeded)

	if summary.Failed > 0 {
		importer.log.Errorf("Failed to upload %d records.", summary.Failed)
	}

	// The watermark advances to the last row's date even when every record
	// was skipped or failed; re-running the same file is safe because every
	// write is an upsert.
	if len(records) > 0 {
		if err := importer.recordWatermark(ctx, records[len(records)-1].DateISO); err != nil {
			importer.log.WithError(err).Error("Error updating uploads")
		}
	}

	return summary, nil
}

// handleRecord runs the full per-record upsert sequence. Only a failed
// transaction upsert fails the record; the category and payee upserts are
// independent of it and run either way, and lookup-entity failures are
// logged with their dependent work skipped.
func (importer *TransactionImporter) handleRecord(ctx context.Context, record *Transaction) error {
	transactionID, transactionErr := importer.store.UpsertTransaction(ctx, record)
	if transactionErr != nil {
		importer.log.WithError(transactionErr).Error("Error upserting record")
	}

	if transactionID != 0 {
		importer.linkTags(ctx, transactionID, record.Description)
	}

	if record.Category != "" && record.Type != "" {
		if _, err := importer.store.UpsertCategory(ctx, record.Category, record.Type); err != nil {
			importer.log.WithError(err).Errorf("Error upserting category '%s'", record.Category)
		}
	}

	if strings.TrimSpace(record.PersonCompany) != "" {
		if _, err := importer.store.UpsertPayee(ctx, record.PersonCompany); err != nil {
			importer.log.WithError(err).Errorf("Error upserting payee '%s'", record.PersonCompany)
		}
	}

	return transactionErr
}

func (importer *TransactionImporter) linkTags(ctx context.Context, transactionID int64, description string) {
	tags := ExtractTags(description)
	if len(tags) == 0 {
		return
	}

	tagIDs := make([]int64, 0, len(tags))

	for _, tag := range tags {
		tagID, err := importer.store.UpsertTag(ctx, tag)
		if err != nil {
			importer.log.WithError(err).Errorf("Error upserting tag '%s'", tag)
			continue
		}

		tagIDs = append(tagIDs, tagID)
	}

	if len(tagIDs) == 0 {
		return
	}

	if err := importer.store.LinkTransactionTags(ctx, transactionID, tagIDs); err != nil {
		importer.log.WithError(err).Error("Error upserting transaction tags")
	}
}

func (importer *TransactionImporter) recordWatermark(ctx context.Context, dateISO string) error {
	uploadedAt, err := parseISODate(dateISO)
	if err != nil {
		return err
	}

	if err := importer.store.RecordUpload(ctx, uploadedAt); err != nil {
		return err
	}

	importer.log.Infof("Updated uploads with date '%s'", dateISO)

	return nil
}
