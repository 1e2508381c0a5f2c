// Package seed loads event candidates from a YAML file for bulk loading.
package seed

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"eventlistings/internal/domain"
)

// Candidate mirrors the create-event input with yaml tags; a seed file can
// carry every field the create path accepts.
type Candidate struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Overview    string   `yaml:"overview"`
	Image       string   `yaml:"image"`
	Venue       string   `yaml:"venue"`
	Location    string   `yaml:"location"`
	Date        string   `yaml:"date"`
	Time        string   `yaml:"time"`
	Mode        string   `yaml:"mode"`
	Audience    string   `yaml:"audience"`
	Agenda      []string `yaml:"agenda"`
	Organizer   string   `yaml:"organizer"`
	Tags        []string `yaml:"tags"`
}

// File is the top-level shape of a seed file.
type File struct {
	Events []Candidate `yaml:"events"`
}

// Load reads a seed file and returns its candidates as create inputs. Records
// are not validated here; the create path applies the same rules to seeds as
// to API submissions.
func Load(path string) ([]domain.CreateEventInput, error) {
	if path == "" {
		return nil, errors.New("seed path is empty")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}

	inputs := make([]domain.CreateEventInput, 0, len(f.Events))
	for _, c := range f.Events {
		inputs = append(inputs, domain.CreateEventInput{
			Title:       c.Title,
			Description: c.Description,
			Overview:    c.Overview,
			Image:       c.Image,
			Venue:       c.Venue,
			Location:    c.Location,
			Date:        c.Date,
			Time:        c.Time,
			Mode:        c.Mode,
			Audience:    c.Audience,
			Agenda:      c.Agenda,
			Organizer:   c.Organizer,
			Tags:        c.Tags,
		})
	}
	return inputs, nil
}
