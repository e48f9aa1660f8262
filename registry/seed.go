package registry

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// seedFile is the on-disk layout accepted by LoadSeed.
type seedFile struct {
	Activities map[string]Activity `yaml:"activities"`
}

// LoadSeed reads a YAML roster seed from path. The file must define at least
// one activity; the invariants are checked by New.
//
//	activities:
//	  Chess Club:
//	    description: Learn strategies and compete in chess tournaments
//	    schedule: Fridays, 3:30 PM - 5:00 PM
//	    max_participants: 12
//	    participants: [michael@mergington.edu]
func LoadSeed(path string) (map[string]Activity, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file %s: %w", path, err)
	}
	defer f.Close()

	var sf seedFile
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&sf); err != nil {
		return nil, fmt.Errorf("failed to decode YAML seed file: %w", err)
	}
	if len(sf.Activities) == 0 {
		return nil, fmt.Errorf("%w: %s defines no activities", ErrInvalidSeed, path)
	}
	return sf.Activities, nil
}

// DefaultSeed returns the Mergington High School activities the service
// starts with when no seed file is configured. Each call returns a fresh map.
func DefaultSeed() map[string]Activity {
	return map[string]Activity{
		"Chess Club": {
			Description:     "Learn strategies and compete in chess tournaments",
			Schedule:        "Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 12,
			Participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
		},
		"Programming Class": {
			Description:     "Learn programming fundamentals and build software projects",
			Schedule:        "Tuesdays and Thursdays, 3:30 PM - 4:30 PM",
			MaxParticipants: 20,
			Participants:    []string{"emma@mergington.edu", "sophia@mergington.edu"},
		},
		"Gym Class": {
			Description:     "Physical education and sports activities",
			Schedule:        "Mondays, Wednesdays, Fridays, 2:00 PM - 3:00 PM",
			MaxParticipants: 30,
			Participants:    []string{"john@mergington.edu", "olivia@mergington.edu"},
		},
		"Tennis Club": {
			Description:     "Tennis instruction and competitive matches",
			Schedule:        "Tuesdays and Thursdays, 4:00 PM - 5:30 PM",
			MaxParticipants: 10,
			Participants:    []string{"james@mergington.edu"},
		},
		"Drama Club": {
			Description:     "Theater productions and acting workshops",
			Schedule:        "Wednesdays, 3:30 PM - 5:00 PM",
			MaxParticipants: 25,
			Participants:    []string{"lucas@mergington.edu", "ava@mergington.edu"},
		},
		"Art Studio": {
			Description:     "Painting, drawing, and sculpture classes",
			Schedule:        "Mondays and Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 18,
			Participants:    []string{"mia@mergington.edu"},
		},
		"Debate Team": {
			Description:     "Competitive debating and public speaking",
			Schedule:        "Tuesdays and Thursdays, 3:30 PM - 4:30 PM",
			MaxParticipants: 16,
			Participants:    []string{"noah@mergington.edu", "grace@mergington.edu"},
		},
		"Robotics Club": {
			Description:     "Build and program robots for competitions",
			Schedule:        "Wednesdays and Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 20,
			Participants:    []string{"lily@mergington.edu"},
		},
		"Soccer Club": {
			Description:     "Competitive soccer training and matches",
			Schedule:        "Mondays and Thursdays, 4:00 PM - 5:30 PM",
			MaxParticipants: 22,
			Participants:    []string{"ethan@mergington.edu", "alex@mergington.edu"},
		},
		"Basketball Team": {
			Description:     "Basketball practice and tournament competitions",
			Schedule:        "Tuesdays and Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 15,
			Participants:    []string{"marcus@mergington.edu"},
		},
		"Photography Club": {
			Description:     "Learn photography techniques and digital editing",
			Schedule:        "Wednesdays, 4:00 PM - 5:30 PM",
			MaxParticipants: 14,
			Participants:    []string{"sarah@mergington.edu", "isabella@mergington.edu"},
		},
		"Music Band": {
			Description:     "Instrumental music ensemble and performances",
			Schedule:        "Mondays and Thursdays, 3:30 PM - 4:30 PM",
			MaxParticipants: 20,
			Participants:    []string{"jacob@mergington.edu"},
		},
		"Science Club": {
			Description:     "Hands-on experiments and scientific exploration",
			Schedule:        "Fridays, 3:30 PM - 4:30 PM",
			MaxParticipants: 18,
			Participants:    []string{"zachary@mergington.edu", "hannah@mergington.edu"},
		},
		"Math Club": {
			Description:     "Problem-solving competitions and math puzzles",
			Schedule:        "Tuesdays, 3:30 PM - 4:30 PM",
			MaxParticipants: 16,
			Participants:    []string{"charlotte@mergington.edu"},
		},
	}
}
