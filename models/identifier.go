package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrMalformedID is returned when a value cannot be read as an ObjectID.
var ErrMalformedID = errors.New("malformed identifier")

// ProviderID identifies a provider regardless of how it was stored.
// Older documents carry the provider reference as a hex string, newer ones as a
// native ObjectID; both decode into the same canonical value.
type ProviderID struct {
	oid primitive.ObjectID
}

// ParseProviderID accepts a ProviderID, an ObjectID (or pointer to one) or its hex string form.
func ParseProviderID(v any) (ProviderID, error) {
	switch t := v.(type) {
	case ProviderID:
		if t.IsZero() {
			return ProviderID{}, ErrMalformedID
		}
		return t, nil
	case primitive.ObjectID:
		if t.IsZero() {
			return ProviderID{}, ErrMalformedID
		}
		return ProviderID{oid: t}, nil
	case *primitive.ObjectID:
		if t == nil {
			return ProviderID{}, ErrMalformedID
		}
		return ParseProviderID(*t)
	case string:
		oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(t))
		if err != nil || oid.IsZero() {
			return ProviderID{}, fmt.Errorf("%w: %q", ErrMalformedID, t)
		}
		return ProviderID{oid: oid}, nil
	default:
		return ProviderID{}, fmt.Errorf("%w: unsupported type %T", ErrMalformedID, v)
	}
}

// NewProviderID wraps a freshly generated ObjectID.
func NewProviderID() ProviderID {
	return ProviderID{oid: primitive.NewObjectID()}
}

func (id ProviderID) IsZero() bool { return id.oid.IsZero() }

func (id ProviderID) ObjectID() primitive.ObjectID { return id.oid }

func (id ProviderID) String() string {
	if id.IsZero() {
		return ""
	}
	return id.oid.Hex()
}

// Equal compares by value, never by representation.
func (id ProviderID) Equal(other ProviderID) bool {
	return !id.IsZero() && id.oid == other.oid
}

// Matches reports whether v, in any supported representation, names the same provider.
func (id ProviderID) Matches(v any) bool {
	other, err := ParseProviderID(v)
	if err != nil {
		return false
	}
	return id.Equal(other)
}

// StoredForms lists every representation this ID may have been persisted as,
// for use in an $in filter.
func (id ProviderID) StoredForms() bson.A {
	return bson.A{id.oid, id.oid.Hex()}
}

// MarshalBSONValue always writes the native ObjectID form.
func (id ProviderID) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if id.IsZero() {
		return bson.TypeNull, nil, nil
	}
	return bson.MarshalValue(id.oid)
}

// UnmarshalBSONValue reads either an ObjectID or its hex string.
func (id *ProviderID) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	switch t {
	case bson.TypeObjectID:
		id.oid = raw.ObjectID()
		return nil
	case bson.TypeString:
		parsed, err := ParseProviderID(raw.StringValue())
		if err != nil {
			return err
		}
		*id = parsed
		return nil
	case bson.TypeNull, bson.TypeUndefined:
		*id = ProviderID{}
		return nil
	default:
		return fmt.Errorf("%w: bson type %s", ErrMalformedID, t)
	}
}

func (id ProviderID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.String())
}

func (id *ProviderID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		*id = ProviderID{}
		return nil
	}
	parsed, err := ParseProviderID(s)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
