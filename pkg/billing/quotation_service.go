package billing

import (
	"errors"
	"fmt"
	"log"
	"regexp"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sahzadahmad246/sonipaintingapp-sub002/models"
)

// Actor identifies the authenticated staff member behind a request. Staff
// can only touch quotations they created; admins see everything.
type Actor struct {
	ID   uuid.UUID
	Role string
}

func (a Actor) admin() bool { return a.Role == models.RoleAdmin }

// QuotationService owns quotation creation, edits, status transitions and
// the cascade to derived projects and invoices. All writes run inside a
// single transaction; the notifier and cleaner collaborators are invoked
// only after commit and can only produce warnings.
type QuotationService struct {
	db       *gorm.DB
	notifier Notifier
	cleaner  ObjectCleaner
}

func NewQuotationService(db *gorm.DB, notifier Notifier, cleaner ObjectCleaner) *QuotationService {
	return &QuotationService{db: db, notifier: notifier, cleaner: cleaner}
}

// Stages of a mutating quotation operation. Every mutation walks these in
// order inside one transaction; an abort from any stage before
// stageCommitted rolls back everything, so no partial quotation/project/
// invoice state is ever visible.
type txnStage string

const (
	stageStarted     txnStage = "started"
	stageQuotation   txnStage = "quotation_updated"
	stageMaterialize txnStage = "materialized_or_skipped"
	stageAudit       txnStage = "audit_logged"
)

func abort(tx *gorm.DB, stage txnStage, err error) error {
	tx.Rollback()
	return fmt.Errorf("aborted at %s: %w", stage, err)
}

// QuotationInput is the payload for creating a quotation.
type QuotationInput struct {
	ClientName    string            `json:"clientName"`
	ClientAddress string            `json:"clientAddress"`
	ClientPhone   string            `json:"clientPhone"`
	Date          models.JSONTime   `json:"date"`
	LineItems     []models.LineItem `json:"lineItems"`
	Subtotal      float64           `json:"subtotal"`
	Discount      float64           `json:"discount"`
	GrandTotal    float64           `json:"grandTotal"`
	Terms         []string          `json:"terms"`
	Note          *string           `json:"note,omitempty"`
}

// QuotationPatch carries a partial update; nil fields are left untouched.
// Editing any financial field without also setting Status drops the
// quotation back to pending.
type QuotationPatch struct {
	ClientName    *string                 `json:"clientName,omitempty"`
	ClientAddress *string                 `json:"clientAddress,omitempty"`
	ClientPhone   *string                 `json:"clientPhone,omitempty"`
	Date          *models.JSONTime        `json:"date,omitempty"`
	LineItems     *[]models.LineItem      `json:"lineItems,omitempty"`
	Subtotal      *float64                `json:"subtotal,omitempty"`
	Discount      *float64                `json:"discount,omitempty"`
	GrandTotal    *float64                `json:"grandTotal,omitempty"`
	Terms         *[]string               `json:"terms,omitempty"`
	Note          *string                 `json:"note,omitempty"`
	Status        *models.QuotationStatus `json:"status,omitempty"`

	// LastKnownUpdate guards against stale writes: when set, the update
	// is rejected with ErrConflict if the quotation changed since the
	// caller last read it.
	LastKnownUpdate *time.Time `json:"lastUpdatedAt,omitempty"`
}

// TouchesFinancials reports whether the patch edits any money field.
func (p *QuotationPatch) TouchesFinancials() bool {
	return p.LineItems != nil || p.Subtotal != nil || p.Discount != nil || p.GrandTotal != nil
}

// MutationResult is returned by every quotation mutation. Project and
// Invoice are non-nil only when this request materialized them. Warning
// carries post-commit delivery failures; the operation itself succeeded.
type MutationResult struct {
	Quotation *models.Quotation `json:"quotation"`
	Project   *models.Project   `json:"project,omitempty"`
	Invoice   *models.Invoice   `json:"invoice,omitempty"`
	Warning   string            `json:"warning,omitempty"`
}

var phonePattern = regexp.MustCompile(`^[0-9]{10}$`)

// Create allocates the next quotation number and persists the quotation as
// pending. The client receives a summary message after commit.
func (s *QuotationService) Create(input QuotationInput, actor Actor) (*MutationResult, error) {
	if err := validateInput(&input); err != nil {
		return nil, err
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, transientf("begin transaction", tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	seq, err := NextSequence(tx, CounterQuotation)
	if err != nil {
		return nil, abort(tx, stageStarted, err)
	}

	q := models.Quotation{
		Number:        FormatNumber(KindQuotation, input.Date.Time().Year(), seq),
		ClientName:    input.ClientName,
		ClientAddress: input.ClientAddress,
		ClientPhone:   input.ClientPhone,
		Date:          input.Date,
		LineItems:     input.LineItems,
		Subtotal:      input.Subtotal,
		Discount:      input.Discount,
		GrandTotal:    input.GrandTotal,
		Terms:         input.Terms,
		Note:          input.Note,
		Status:        models.QuotationPending,
		CreatedBy:     actor.ID,
	}
	if err := tx.Create(&q).Error; err != nil {
		return nil, abort(tx, stageQuotation, transientf("insert quotation "+q.Number, err))
	}

	if err := AppendAudit(tx, "quotation.created", actor.ID, map[string]interface{}{
		"number":     q.Number,
		"client":     q.ClientName,
		"grandTotal": q.GrandTotal,
	}); err != nil {
		return nil, abort(tx, stageAudit, err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, transientf("commit quotation "+q.Number, err)
	}

	log.Printf("✅ Created quotation %s for %s", q.Number, q.ClientName)
	warning := notify(s.notifier, q.ClientPhone, quotationSummary(&q))
	return &MutationResult{Quotation: &q, Warning: warning}, nil
}

// Update applies the non-nil patch fields. A financial edit without an
// explicit status resets the quotation to pending; an explicit accepted
// status materializes the derived documents in the same transaction.
func (s *QuotationService) Update(number string, patch QuotationPatch, actor Actor) (*MutationResult, error) {
	if patch.Status != nil && !models.ValidStatus(*patch.Status) {
		return nil, &ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status %q", *patch.Status)}
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, transientf("begin transaction", tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	q, err := s.findForUpdate(tx, number, actor)
	if err != nil {
		return nil, abort(tx, stageStarted, err)
	}
	if patch.LastKnownUpdate != nil && !sameInstant(q.UpdatedAt, *patch.LastKnownUpdate) {
		return nil, abort(tx, stageStarted, fmt.Errorf("quotation %s was modified by someone else: %w", number, ErrConflict))
	}

	if err := applyPatch(q, &patch); err != nil {
		return nil, abort(tx, stageStarted, err)
	}

	if err := tx.Save(q).Error; err != nil {
		return nil, abort(tx, stageQuotation, transientf("update quotation "+number, err))
	}

	var project *models.Project
	var invoice *models.Invoice
	if q.Status == models.QuotationAccepted {
		project, invoice, err = materialize(tx, q)
		if err != nil {
			return nil, abort(tx, stageMaterialize, err)
		}
	}

	if err := AppendAudit(tx, "quotation.updated", actor.ID, map[string]interface{}{
		"number": q.Number,
		"status": q.Status,
	}); err != nil {
		return nil, abort(tx, stageAudit, err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, transientf("commit quotation "+number, err)
	}

	log.Printf("✅ Updated quotation %s (status=%s)", q.Number, q.Status)
	warning := notify(s.notifier, q.ClientPhone, quotationSummary(q))
	return &MutationResult{Quotation: q, Project: project, Invoice: invoice, Warning: warning}, nil
}

// ChangeStatus transitions a quotation between pending, accepted and
// rejected. The first transition to accepted materializes the project and
// invoice inside the same transaction; repeat accepts are no-ops on the
// derived documents.
func (s *QuotationService) ChangeStatus(number string, newStatus models.QuotationStatus, actor Actor) (*MutationResult, error) {
	if !models.ValidStatus(newStatus) {
		return nil, &ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status %q", newStatus)}
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, transientf("begin transaction", tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	q, err := s.findForUpdate(tx, number, actor)
	if err != nil {
		return nil, abort(tx, stageStarted, err)
	}

	q.Status = newStatus
	if err := tx.Save(q).Error; err != nil {
		return nil, abort(tx, stageQuotation, transientf("update quotation "+number, err))
	}

	var project *models.Project
	var invoice *models.Invoice
	if newStatus == models.QuotationAccepted {
		project, invoice, err = materialize(tx, q)
		if err != nil {
			return nil, abort(tx, stageMaterialize, err)
		}
	}

	if err := AppendAudit(tx, "quotation."+string(newStatus), actor.ID, map[string]interface{}{
		"number": q.Number,
	}); err != nil {
		return nil, abort(tx, stageAudit, err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, transientf("commit status change "+number, err)
	}

	log.Printf("✅ Quotation %s is now %s", q.Number, q.Status)
	warning := notify(s.notifier, q.ClientPhone, statusMessage(q))
	return &MutationResult{Quotation: q, Project: project, Invoice: invoice, Warning: warning}, nil
}

// Delete removes a quotation together with its derived project and
// invoice. Stored site images are cleaned up after commit, best effort.
func (s *QuotationService) Delete(number string, actor Actor) (*MutationResult, error) {
	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, transientf("begin transaction", tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	q, err := s.findForUpdate(tx, number, actor)
	if err != nil {
		return nil, abort(tx, stageStarted, err)
	}

	var siteImages []string
	var project models.Project
	perr := tx.Where("quotation_number = ?", number).First(&project).Error
	switch {
	case perr == nil:
		siteImages = project.SiteImages
		if err := tx.Where("project_number = ?", project.Number).Delete(&models.Invoice{}).Error; err != nil {
			return nil, abort(tx, stageQuotation, transientf("delete invoice for "+number, err))
		}
		if err := tx.Delete(&project).Error; err != nil {
			return nil, abort(tx, stageQuotation, transientf("delete project for "+number, err))
		}
	case errors.Is(perr, gorm.ErrRecordNotFound):
		// nothing derived, nothing to cascade
	default:
		return nil, abort(tx, stageStarted, transientf("look up project for "+number, perr))
	}

	if err := tx.Delete(q).Error; err != nil {
		return nil, abort(tx, stageQuotation, transientf("delete quotation "+number, err))
	}

	if err := AppendAudit(tx, "quotation.deleted", actor.ID, map[string]interface{}{
		"number": q.Number,
	}); err != nil {
		return nil, abort(tx, stageAudit, err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, transientf("commit delete "+number, err)
	}

	log.Printf("✅ Deleted quotation %s and derived documents", number)

	var warning string
	if s.cleaner != nil {
		for _, publicID := range siteImages {
			if err := s.cleaner.Delete(publicID); err != nil {
				log.Printf("⚠️  could not remove site image %s: %v", publicID, err)
				warning = "some site images could not be removed"
			}
		}
	}
	return &MutationResult{Quotation: q, Warning: warning}, nil
}

// findForUpdate loads a quotation within the actor's scope.
func (s *QuotationService) findForUpdate(tx *gorm.DB, number string, actor Actor) (*models.Quotation, error) {
	query := tx.Where("number = ?", number)
	if !actor.admin() {
		query = query.Where("created_by = ?", actor.ID)
	}
	var q models.Quotation
	if err := query.First(&q).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("quotation %s: %w", number, ErrNotFound)
		}
		return nil, transientf("load quotation "+number, err)
	}
	return &q, nil
}

func validateInput(input *QuotationInput) error {
	if input.ClientName == "" {
		return &ValidationError{Field: "clientName", Reason: "required"}
	}
	if input.ClientAddress == "" {
		return &ValidationError{Field: "clientAddress", Reason: "required"}
	}
	if !phonePattern.MatchString(input.ClientPhone) {
		return &ValidationError{Field: "clientPhone", Reason: "must be a 10-digit number"}
	}
	if err := validateLineItems(input.LineItems); err != nil {
		return err
	}
	if input.Subtotal < 0 {
		return &ValidationError{Field: "subtotal", Reason: "must not be negative"}
	}
	if input.Discount < 0 {
		return &ValidationError{Field: "discount", Reason: "must not be negative"}
	}
	if input.GrandTotal < 0 {
		return &ValidationError{Field: "grandTotal", Reason: "must not be negative"}
	}
	if input.Date.Time().IsZero() {
		input.Date = models.JSONTime(time.Now())
	}
	return nil
}

func validateLineItems(items []models.LineItem) error {
	if len(items) == 0 {
		return &ValidationError{Field: "lineItems", Reason: "at least one line item is required"}
	}
	for i, item := range items {
		if item.Description == "" {
			return &ValidationError{Field: fmt.Sprintf("lineItems[%d].description", i), Reason: "required"}
		}
		if item.Rate < 0 {
			return &ValidationError{Field: fmt.Sprintf("lineItems[%d].rate", i), Reason: "must not be negative"}
		}
		if item.Area != nil && *item.Area < 0 {
			return &ValidationError{Field: fmt.Sprintf("lineItems[%d].area", i), Reason: "must not be negative"}
		}
		if item.Total != nil && *item.Total < 0 {
			return &ValidationError{Field: fmt.Sprintf("lineItems[%d].total", i), Reason: "must not be negative"}
		}
	}
	return nil
}

// applyPatch copies the non-nil patch fields onto q and enforces the
// pending reset on financial edits.
func applyPatch(q *models.Quotation, patch *QuotationPatch) error {
	if patch.ClientName != nil {
		if *patch.ClientName == "" {
			return &ValidationError{Field: "clientName", Reason: "required"}
		}
		q.ClientName = *patch.ClientName
	}
	if patch.ClientAddress != nil {
		if *patch.ClientAddress == "" {
			return &ValidationError{Field: "clientAddress", Reason: "required"}
		}
		q.ClientAddress = *patch.ClientAddress
	}
	if patch.ClientPhone != nil {
		if !phonePattern.MatchString(*patch.ClientPhone) {
			return &ValidationError{Field: "clientPhone", Reason: "must be a 10-digit number"}
		}
		q.ClientPhone = *patch.ClientPhone
	}
	if patch.Date != nil {
		q.Date = *patch.Date
	}
	if patch.LineItems != nil {
		if err := validateLineItems(*patch.LineItems); err != nil {
			return err
		}
		q.LineItems = *patch.LineItems
	}
	if patch.Subtotal != nil {
		if *patch.Subtotal < 0 {
			return &ValidationError{Field: "subtotal", Reason: "must not be negative"}
		}
		q.Subtotal = *patch.Subtotal
	}
	if patch.Discount != nil {
		if *patch.Discount < 0 {
			return &ValidationError{Field: "discount", Reason: "must not be negative"}
		}
		q.Discount = *patch.Discount
	}
	if patch.GrandTotal != nil {
		if *patch.GrandTotal < 0 {
			return &ValidationError{Field: "grandTotal", Reason: "must not be negative"}
		}
		q.GrandTotal = *patch.GrandTotal
	}
	if patch.Terms != nil {
		q.Terms = *patch.Terms
	}
	if patch.Note != nil {
		q.Note = patch.Note
	}

	switch {
	case patch.Status != nil:
		q.Status = *patch.Status
	case patch.TouchesFinancials():
		// money changed and no explicit status: back to pending
		q.Status = models.QuotationPending
	}
	return nil
}

// sameInstant compares timestamps at millisecond precision; JSON clients
// round-trip times with less precision than the database stores.
func sameInstant(a, b time.Time) bool {
	return a.Truncate(time.Millisecond).Equal(b.Truncate(time.Millisecond))
}
