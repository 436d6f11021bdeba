package persistence

import (
	"context"

	gerrors "github.com/go-faster/errors"

	"github.com/tenancyjustice/clerk/modules/issue/domain/aggregates/issue"
	"github.com/tenancyjustice/clerk/pkg/composables"
)

const (
	// Atomic increment-and-return per prefix group. The insert branch
	// lazily seeds a group's counter from the scan-max of issues that
	// existed before the counter row did. The updated counter row stays
	// locked until the surrounding transaction commits, which serializes
	// allocation per group.
	nextFilerefSQL = `
		INSERT INTO fileref_counters (prefix, value)
		VALUES (
			$1,
			(SELECT COALESCE(MAX(substring(fileref FROM 2)::bigint), 0) + 1
			 FROM issues
			 WHERE fileref ~ ('^' || $1 || '[0-9]+$'))
		)
		ON CONFLICT (prefix) DO UPDATE
		SET value = fileref_counters.value + 1
		RETURNING value`

	resyncFilerefSQL = `
		INSERT INTO fileref_counters (prefix, value)
		VALUES (
			$1,
			(SELECT COALESCE(MAX(substring(fileref FROM 2)::bigint), 0)
			 FROM issues
			 WHERE fileref ~ ('^' || $1 || '[0-9]+$'))
		)
		ON CONFLICT (prefix) DO UPDATE
		SET value = GREATEST(fileref_counters.value, EXCLUDED.value)`
)

type FilerefAllocator struct{}

func NewFilerefAllocator() issue.Allocator {
	return &FilerefAllocator{}
}

func (a *FilerefAllocator) Next(ctx context.Context, prefix string) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}

	var n int64
	if err := tx.QueryRow(ctx, nextFilerefSQL, prefix).Scan(&n); err != nil {
		return 0, gerrors.Wrap(err, "next fileref number")
	}
	return n, nil
}

func (a *FilerefAllocator) Resync(ctx context.Context, prefix string) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, resyncFilerefSQL, prefix); err != nil {
		return gerrors.Wrap(err, "resync fileref counter")
	}
	return nil
}
