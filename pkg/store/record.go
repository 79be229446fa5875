package store

import (
	"time"

	"github.com/google/uuid"

	"github.com/rentwise/accessgate/pkg/plan"
)

// Record is a stored property, tenant or document as far as access decisions
// are concerned. The CRUD screens own the remaining columns.
type Record struct {
	ID         uuid.UUID
	OwnerID    uuid.UUID
	Kind       plan.Resource
	CreatedAt  time.Time
	ArchivedAt *time.Time // properties only
}

// Live reports whether the record counts toward its owner's quota.
func (r Record) Live() bool {
	return r.ArchivedAt == nil
}

func (r Record) validate() error {
	switch r.Kind {
	case plan.ResourceProperties, plan.ResourceTenants, plan.ResourceDocuments:
	default:
		return ErrUnknownResource
	}
	if r.OwnerID == uuid.Nil {
		return ErrMissingOwnerID
	}
	if r.ArchivedAt != nil && r.Kind != plan.ResourceProperties {
		return ErrArchiveUnsupported
	}
	return nil
}

// listable reports whether the kind supports ordered listing and live counts.
func listable(res plan.Resource) bool {
	return res == plan.ResourceProperties || res == plan.ResourceTenants
}

func checkWindow(offset, limit int64) error {
	if offset < 0 || limit < 0 {
		return ErrInvalidWindow
	}
	return nil
}
