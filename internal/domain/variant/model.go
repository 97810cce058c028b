package variant

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownVariant = errors.New("unknown variant")

// AnyRoleName is the label shown for the role that does not restrict.
const AnyRoleName = "Sin asignar"

// Role is a position selector. A record matches when one of its position
// tokens contains any marker. The zero Role matches everything.
type Role struct {
	ID      string   `yaml:"id" json:"id"`
	Name    string   `yaml:"name" json:"name"`
	Markers []string `yaml:"markers" json:"markers,omitempty"`
}

func (r Role) IsAny() bool {
	return len(r.Markers) == 0
}

// Columns maps record attributes to workbook header names.
type Columns struct {
	Name        string `yaml:"name"`
	Team        string `yaml:"team"`
	Position    string `yaml:"position"`
	Foot        string `yaml:"foot"`
	Minutes     string `yaml:"minutes"`
	Region      string `yaml:"region"`
	Competition string `yaml:"competition"`
	Season      string `yaml:"season"`
}

// Variant is one dataset page: a workbook, its score column and the ordered
// metric keys every record of the variant carries.
type Variant struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	SourceFile  string   `yaml:"source_file"`
	ScoreColumn string   `yaml:"score_column"`
	MetricKeys  []string `yaml:"metrics"`
	Roles       []Role   `yaml:"roles"`
	Columns     Columns  `yaml:"-"`
}

// FindRole resolves a role id. Empty id and "any" select the zero role.
func (v Variant) FindRole(id string) (Role, bool) {
	id = strings.TrimSpace(id)
	if id == "" || id == "any" {
		return Role{}, true
	}
	for _, r := range v.Roles {
		if r.ID == id {
			return r, true
		}
	}
	return Role{}, false
}

// RoleOptions lists the selectable roles, the unrestricted one first.
// Variants without a role selector return nil.
func (v Variant) RoleOptions() []Role {
	if len(v.Roles) == 0 {
		return nil
	}
	out := make([]Role, 0, len(v.Roles)+1)
	out = append(out, Role{ID: "any", Name: AnyRoleName})
	return append(out, v.Roles...)
}

func (v Variant) HasMetric(key string) bool {
	for _, k := range v.MetricKeys {
		if k == key {
			return true
		}
	}
	return false
}

func (v Variant) Validate() error {
	if strings.TrimSpace(v.ID) == "" {
		return fmt.Errorf("variant id is required")
	}
	if strings.TrimSpace(v.SourceFile) == "" {
		return fmt.Errorf("variant %s: source file is required", v.ID)
	}
	if strings.TrimSpace(v.ScoreColumn) == "" {
		return fmt.Errorf("variant %s: score column is required", v.ID)
	}
	if len(v.MetricKeys) == 0 {
		return fmt.Errorf("variant %s: at least one metric is required", v.ID)
	}
	seen := make(map[string]struct{}, len(v.MetricKeys))
	for _, k := range v.MetricKeys {
		if _, dup := seen[k]; dup {
			return fmt.Errorf("variant %s: duplicate metric %q", v.ID, k)
		}
		seen[k] = struct{}{}
	}
	for _, r := range v.Roles {
		if r.ID == "" || r.ID == "any" || len(r.Markers) == 0 {
			return fmt.Errorf("variant %s: role %q needs a distinct id and markers", v.ID, r.Name)
		}
	}
	return nil
}
