package storesource

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/ghuser/retailseed/pkg/logger"
	"github.com/ghuser/retailseed/services/sales/domain/models"
	domainsvcs "github.com/ghuser/retailseed/services/sales/domain/services"
)

// document mirrors the store directory payload. Only the fields a Store
// needs are declared.
type document struct {
	Store *[]json.RawMessage `json:"store"`
}

type record struct {
	Key *struct {
		ID json.RawMessage `json:"id"`
	} `json:"key"`
	Name *struct {
		Label string `json:"label"`
	} `json:"name"`
	Location *struct {
		Address *struct {
			AdministrativeArea string `json:"administrativeArea"`
		} `json:"address"`
		Geo *struct {
			Latitude  flexFloat `json:"latitude"`
			Longitude flexFloat `json:"longitude"`
		} `json:"geo"`
	} `json:"location"`
}

// flexFloat accepts a JSON number or a numeric string.
type flexFloat struct {
	value float64
	set   bool
}

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		b = []byte(s)
	}
	v, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return fmt.Errorf("not a number: %s", b)
	}
	f.value, f.set = v, true
	return nil
}

// Transform maps every record of data to a validated Store. Records that do
// not map or fail validation are logged and skipped. A document without a
// "store" key yields no stores and no error; malformed JSON is an error.
func Transform(ctx context.Context, data []byte, log logger.Logger) ([]models.Store, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode stores document: %w", err)
	}
	if doc.Store == nil {
		log.WarnContext(ctx, "stores document has no store list")
		return nil, nil
	}

	stores := make([]models.Store, 0, len(*doc.Store))
	skipped := 0
	for i, raw := range *doc.Store {
		s, err := toStore(raw)
		if err == nil {
			s, err = domainsvcs.ValidateStore(s)
		}
		if err != nil {
			skipped++
			log.WarnContext(ctx, "skipping store record", "index", i, "error", err)
			continue
		}
		stores = append(stores, s)
	}
	log.InfoContext(ctx, "stores transformed", "valid", len(stores), "skipped", skipped)
	return stores, nil
}

func toStore(raw json.RawMessage) (models.Store, error) {
	var r record
	if err := json.Unmarshal(raw, &r); err != nil {
		return models.Store{}, fmt.Errorf("decode record: %w", err)
	}
	switch {
	case r.Key == nil || len(r.Key.ID) == 0:
		return models.Store{}, errors.New("missing key.id")
	case r.Name == nil:
		return models.Store{}, errors.New("missing name.label")
	case r.Location == nil || r.Location.Address == nil:
		return models.Store{}, errors.New("missing location.address")
	case r.Location.Geo == nil || !r.Location.Geo.Latitude.set || !r.Location.Geo.Longitude.set:
		return models.Store{}, errors.New("missing location.geo")
	}

	id, err := idString(r.Key.ID)
	if err != nil {
		return models.Store{}, err
	}
	return models.Store{
		ID:        id,
		Name:      r.Name.Label,
		State:     r.Location.Address.AdministrativeArea,
		Latitude:  r.Location.Geo.Latitude.value,
		Longitude: r.Location.Geo.Longitude.value,
	}, nil
}

// idString accepts string or numeric ids; stores are keyed by text.
func idString(raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("key.id is neither string nor number: %s", raw)
	}
	return n.String(), nil
}
