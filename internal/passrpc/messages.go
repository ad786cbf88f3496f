package passrpc

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/timestamppb"
)

var ErrMalformedMessage = errors.New("malformed message")

// Timestamp is the {seconds, nanos} object used for times inside Struct payloads.
type Timestamp struct {
	Seconds int64 `json:"seconds"`
	Nanos   int32 `json:"nanos"`
}

// FromTime converts t; the zero time becomes nil.
func FromTime(t time.Time) *Timestamp {
	if t.IsZero() {
		return nil
	}
	pb := timestamppb.New(t)
	return &Timestamp{Seconds: pb.GetSeconds(), Nanos: pb.GetNanos()}
}

// Proto returns the protobuf form, which callers validate with CheckValid.
func (t *Timestamp) Proto() *timestamppb.Timestamp {
	if t == nil {
		return nil
	}
	return &timestamppb.Timestamp{Seconds: t.Seconds, Nanos: t.Nanos}
}

// Document is a pass as served by the directory.
type Document struct {
	ID               string     `json:"id"`
	Type             string     `json:"type"`
	PlateAlpha       string     `json:"plateAlpha"`
	PlateNum         string     `json:"plateNum"`
	Location         string     `json:"location"`
	Status           string     `json:"status"`
	ExpiresAt        *Timestamp `json:"expiresAt,omitempty"`
	CreatedAt        *Timestamp `json:"createdAt,omitempty"`
	CreatedBy        string     `json:"createdBy,omitempty"`
	CreatedByName    string     `json:"createdByName,omitempty"`
	CreatedByCompany string     `json:"createdByCompany,omitempty"`

	// standard passes
	OwnerName    string `json:"ownerName,omitempty"`
	OwnerCompany string `json:"ownerCompany,omitempty"`
	Serial       string `json:"serial,omitempty"`

	// visitor passes
	VisitorName   string `json:"visitorName,omitempty"`
	PersonToVisit string `json:"personToVisit,omitempty"`
	Purpose       string `json:"purpose,omitempty"`

	// QR is the encoded QR payload, set on IssuePass replies.
	QR string `json:"qr,omitempty"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginReply struct {
	AccessToken string `json:"access_token"`
	Role        string `json:"role"`
}

type ListRequest struct {
	Status string `json:"status,omitempty"`
}

type NewUser struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Company  string `json:"company,omitempty"`
}

// Encode converts a JSON-tagged value into a Struct.
func Encode(v any) (*structpb.Struct, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return structpb.NewStruct(m)
}

// Decode fills v from s. Field type mismatches yield ErrMalformedMessage.
func Decode(s *structpb.Struct, v any) error {
	if s == nil {
		return fmt.Errorf("%w: empty message", ErrMalformedMessage)
	}
	b, err := json.Marshal(s.AsMap())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	return nil
}

// EncodeDocuments packs docs into a ListValue of Structs.
func EncodeDocuments(docs []*Document) (*structpb.ListValue, error) {
	values := make([]*structpb.Value, 0, len(docs))
	for _, d := range docs {
		s, err := Encode(d)
		if err != nil {
			return nil, fmt.Errorf("encode pass %s: %w", d.ID, err)
		}
		values = append(values, structpb.NewStructValue(s))
	}
	return &structpb.ListValue{Values: values}, nil
}

// DecodeDocument decodes a single pass.
func DecodeDocument(s *structpb.Struct) (*Document, error) {
	var d Document
	if err := Decode(s, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// DocumentID reads the "id" field of an undecoded pass, or "".
func DocumentID(s *structpb.Struct) string {
	return s.GetFields()["id"].GetStringValue()
}
