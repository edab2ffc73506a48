package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
)

// Curriculum mirrors the structured subjects file: levels map to semesters,
// semesters list the subjects taught during them. Each level-semester pair
// becomes one class cohort.
type Curriculum struct {
	Levels map[string]map[string]Semester `mapstructure:"levels"`
}

type Semester struct {
	Subjects []Subject `mapstructure:"subjects"`
}

// Subject is a raw course descriptor. Credit is left untyped since the source
// records carry it inconsistently as a number, a numeric string or nothing.
type Subject struct {
	Code       string   `mapstructure:"code"`
	Credit     any      `mapstructure:"credit"`
	Lecturers  []string `mapstructure:"lecturers"`
	Assistants []string `mapstructure:"assistants"`
}

// RoomInventory mirrors the structured rooms file: a flat list of labels.
type RoomInventory struct {
	Rooms []RoomEntry `mapstructure:"rooms"`
}

type RoomEntry struct {
	Label string `mapstructure:"label"`
}

func CurriculumFromJson(file string) (Curriculum, error) {
	var curriculum Curriculum
	err := decodeJsonFile(file, &curriculum)
	return curriculum, err
}

func RoomsFromJson(file string) (RoomInventory, error) {
	var inventory RoomInventory
	err := decodeJsonFile(file, &inventory)
	return inventory, err
}

func decodeJsonFile(file string, output any) error {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("cannot read %v: %w", file, err)
	}

	var raw map[string]any
	if err := json.Unmarshal(bytes, &raw); err != nil {
		return fmt.Errorf("cannot parse %v: %w", file, err)
	}

	if err := mapstructure.Decode(raw, output); err != nil {
		return fmt.Errorf("cannot decode %v: %w", file, err)
	}
	return nil
}
