package services

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/gateguard/internal/client/models"
	"github.com/dmitrijs2005/gateguard/internal/common"
	"github.com/dmitrijs2005/gateguard/internal/passrpc"
	"github.com/dmitrijs2005/gateguard/internal/validation"
	"google.golang.org/protobuf/types/known/structpb"
)

// Normalize turns a remote pass document into a cache record: timestamps
// become UTC times at microsecond precision, plate letters are upper-cased
// and the details variant is chosen by type. Any defect yields a
// *common.NormalizationError.
func Normalize(raw *structpb.Struct) (models.Pass, error) {
	id := passrpc.DocumentID(raw)
	fail := func(format string, args ...any) (models.Pass, error) {
		return models.Pass{}, &common.NormalizationError{PassID: id, Reason: fmt.Sprintf(format, args...)}
	}

	doc, err := passrpc.DecodeDocument(raw)
	if err != nil {
		return fail("%v", err)
	}

	expiresAt, err := toTime(doc.ExpiresAt)
	if err != nil {
		return fail("expiresAt: %v", err)
	}
	if expiresAt.IsZero() {
		return fail("expiresAt: missing")
	}

	createdAt, err := toTime(doc.CreatedAt)
	if err != nil {
		return fail("createdAt: %v", err)
	}

	p := models.Pass{
		ID:               doc.ID,
		Type:             models.PassType(doc.Type),
		PlateAlpha:       validation.NormalizePlateAlpha(doc.PlateAlpha),
		PlateNum:         doc.PlateNum,
		Status:           models.Status(doc.Status),
		ExpiresAt:        expiresAt,
		CreatedAt:        createdAt,
		Location:         doc.Location,
		CreatedBy:        doc.CreatedBy,
		CreatedByName:    doc.CreatedByName,
		CreatedByCompany: doc.CreatedByCompany,
	}

	switch p.Type {
	case models.PassTypeStandard:
		p.Details = models.StandardDetails{OwnerName: doc.OwnerName, OwnerCompany: doc.OwnerCompany, Serial: doc.Serial}
	case models.PassTypeVisitor:
		p.Details = models.VisitorDetails{VisitorName: doc.VisitorName, PersonToVisit: doc.PersonToVisit, Purpose: doc.Purpose}
	default:
		return fail("unknown type %q", doc.Type)
	}

	if err := validation.Struct(p); err != nil {
		return fail("%s", validation.Describe(err))
	}
	if err := validation.Struct(p.Details); err != nil {
		return fail("%s", validation.Describe(err))
	}

	return p, nil
}

// toTime converts an optional remote timestamp; nil maps to the zero time.
func toTime(ts *passrpc.Timestamp) (time.Time, error) {
	if ts == nil {
		return time.Time{}, nil
	}
	pb := ts.Proto()
	if err := pb.CheckValid(); err != nil {
		return time.Time{}, err
	}
	return pb.AsTime().UTC().Truncate(time.Microsecond), nil
}
