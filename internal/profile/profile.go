package profile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Profile is the structured record the portfolio site is rendered from.
// It is read-only static data; the retrieval corpus is a pure function of it.
type Profile struct {
	Personal       Personal     `json:"personal"`
	Skills         []SkillGroup `json:"skills"`
	Projects       []Project    `json:"projects"`
	WorkExperience []Job        `json:"workExperience"`

	// Optional sections; absent in minimal profiles.
	Photography []Photo  `json:"photography,omitempty"`
	Cooking     []Recipe `json:"cooking,omitempty"`
	Pages       []string `json:"pages,omitempty"`
}

type Personal struct {
	Name     string `json:"name"`
	Title    string `json:"title"`
	Location string `json:"location"`
	Email    string `json:"email"`
	GitHub   string `json:"github"`
	LinkedIn string `json:"linkedin"`
	Bio      string `json:"bio"`
	Tagline  string `json:"tagline"`
}

type SkillGroup struct {
	Category string   `json:"category"`
	Items    []string `json:"items"`
}

type Project struct {
	Title       string   `json:"title"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Stack       []string `json:"stack"`
	GitHub      string   `json:"github,omitempty"`
	Demo        string   `json:"demo,omitempty"`
}

type Job struct {
	Role     string   `json:"role"`
	Company  string   `json:"company"`
	Duration string   `json:"duration"`
	Location string   `json:"location"`
	Bullets  []string `json:"bullets"`
}

type Photo struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	Location string `json:"location"`
	Year     string `json:"year"`
}

type Recipe struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}

	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse profile: %w", err)
	}

	if p.Personal.Name == "" {
		return nil, fmt.Errorf("profile %s has no personal.name", path)
	}

	return &p, nil
}
