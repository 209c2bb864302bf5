package alert

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/asthmaguard/asthmaguard/internal/platform/geo"
)

// EmergencyInput carries everything an SOS message needs.
type EmergencyInput struct {
	PatientName string
	DoctorPhone string
	BloodGroup  string
	Triggers    []string
	Location    geo.Location
}

// RedZoneInput carries the details of a red-zone reading alert.
type RedZoneInput struct {
	PatientName  string
	DoctorPhone  string
	Ratio        float64
	Reading      float64
	PersonalBest float64
}

// Alert is a composed WhatsApp deep link plus the plain-text message it
// encodes, so clients can preview before opening the link.
type Alert struct {
	Message string `json:"message"`
	Link    string `json:"link"`
}

// Emergency composes an SOS alert. The location line is a maps link when
// coordinates resolved, otherwise the patient's city.
func Emergency(in EmergencyInput) (Alert, error) {
	digits, err := NormalizePhone(in.DoctorPhone)
	if err != nil {
		return Alert{}, err
	}

	msg := strings.Join([]string{
		"\U0001F6A8 *SOS EMERGENCY ALERT* \U0001F6A8",
		"",
		"*Patient:* " + in.PatientName,
		"*Blood Group:* " + in.BloodGroup,
		"*Triggers:* " + strings.Join(in.Triggers, ", "),
		"*Location:* " + in.Location.Reference(),
		"",
		"PLEASE HELP!",
	}, "\n")

	return Alert{Message: msg, Link: waLink(digits, msg)}, nil
}

// RedZone composes a doctor alert for a red-zone peak-flow reading. The
// ratio is rendered with its fractional part dropped.
func RedZone(in RedZoneInput) (Alert, error) {
	digits, err := NormalizePhone(in.DoctorPhone)
	if err != nil {
		return Alert{}, err
	}

	msg := strings.Join([]string{
		"\U0001F6A8 *RESPIRATORY ALERT* \U0001F6A8",
		"",
		"*Patient:* " + in.PatientName,
		fmt.Sprintf("*Status:* RED ZONE (%d%%)", int(in.Ratio)),
		"*Peak Flow:* " + strconv.FormatFloat(in.Reading, 'f', -1, 64) + " L/min",
	}, "\n")

	return Alert{Message: msg, Link: waLink(digits, msg)}, nil
}

func waLink(digits, message string) string {
	return "https://wa.me/" + digits + "?text=" + url.QueryEscape(message)
}
