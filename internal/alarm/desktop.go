package alarm

import "github.com/gen2brain/beeep"

// Desktop sends notifications through the platform notification service.
type Desktop struct {
	Icon string
}

func (d *Desktop) Notify(title, message string) error {
	return beeep.Notify(title, message, d.Icon)
}
