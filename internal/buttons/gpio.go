package buttons

import (
	"fmt"

	"github.com/stianeikeland/go-rpio/v4"
)

// GPIOSource samples the buttons from the BCM GPIO block. Read reports
// presses, not levels: a button held across several ticks counts once.
type GPIOSource struct {
	profile Profile
	pins    [Count]rpio.Pin
	wired   [Count]bool
	edges   Edges
}

// OpenGPIO maps GPIO memory and configures the profile's pins as pulled-up
// inputs.
func OpenGPIO(profile Profile) (*GPIOSource, error) {
	if err := rpio.Open(); err != nil {
		return nil, fmt.Errorf("failed to open GPIO: %w", err)
	}

	s := &GPIOSource{profile: profile}
	for i, pin := range profile.Pins {
		if pin == NoPin {
			continue
		}
		p := rpio.Pin(pin)
		p.Input()
		p.PullUp()
		s.pins[i] = p
		s.wired[i] = true
	}
	return s, nil
}

// Profile returns the pin mapping in use.
func (s *GPIOSource) Profile() Profile {
	return s.profile
}

// Read implements Source. Buttons short the line to ground, so low is pressed.
func (s *GPIOSource) Read() (State, error) {
	var level State
	for i := range s.pins {
		if !s.wired[i] {
			continue
		}
		level[i] = s.pins[i].Read() == rpio.Low
	}
	return s.edges.Next(level), nil
}

// Close implements Source.
func (s *GPIOSource) Close() error {
	return rpio.Close()
}
