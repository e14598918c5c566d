package notify

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinic-booking-api/internal/model"
)

func day(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

func TestFormatDate(t *testing.T) {
	tests := []struct {
		zone string
		in   time.Time
		want string
	}{
		{"UTC", day(2025, time.June, 1), "Sunday, June 1, 2025"},
		{"America/Los_Angeles", day(2025, time.June, 1), "Sunday, June 1, 2025"},
		{"Asia/Kolkata", day(2024, time.February, 29), "Thursday, February 29, 2024"},
		{"Pacific/Kiritimati", day(2025, time.December, 31), "Wednesday, December 31, 2025"},
	}
	for _, tt := range tests {
		t.Run(tt.zone, func(t *testing.T) {
			loc, err := time.LoadLocation(tt.zone)
			require.NoError(t, err)
			assert.Equal(t, tt.want, NewComposer(loc).FormatDate(tt.in))
		})
	}
}

func TestAddressLines(t *testing.T) {
	assert.Equal(t, []string{"12 Main St", "Apt 4", "Chennai"}, AddressLines("  12 Main St \r\nApt 4\n Chennai"))
	assert.Equal(t, []string{"single"}, AddressLines("single"))
}

func TestComposeFullAppointment(t *testing.T) {
	age, gender := 34, "male"
	msg, err := NewComposer(nil).Compose(model.Appointment{
		Email:   "ravi@example.com",
		Name:    "Ravi",
		Age:     &age,
		Gender:  &gender,
		Date:    day(2025, time.June, 1),
		Time:    "10:00",
		Address: "12 Main St\nChennai",
	})
	require.NoError(t, err)

	assert.Equal(t, "ravi@example.com", msg.To)
	assert.Equal(t, "Appointment Confirmation for Ravi", msg.Subject)
	assert.Contains(t, msg.HTML, "Dear Ravi,")
	assert.Contains(t, msg.HTML, "<strong>Age:</strong> 34")
	assert.Contains(t, msg.HTML, "<strong>Gender:</strong> male")
	assert.Contains(t, msg.HTML, "<strong>Date:</strong> Sunday, June 1, 2025")
	assert.Contains(t, msg.HTML, "<strong>Time:</strong> 10:00")
	assert.Contains(t, msg.HTML, "12 Main St<br>Chennai")
	assert.Contains(t, msg.HTML, "arrive 10 minutes before")
	assert.Contains(t, msg.HTML, "at least 24 hours in advance")
}

func TestComposeOmitsMissingOptionalFields(t *testing.T) {
	blank := "  "
	zero := 0
	for name, a := range map[string]model.Appointment{
		"nil":   {Email: "a@example.com", Name: "Asha", Date: day(2025, time.June, 1), Time: "09:00", Address: "x"},
		"empty": {Email: "a@example.com", Name: "Asha", Age: &zero, Gender: &blank, Date: day(2025, time.June, 1), Time: "09:00", Address: "x"},
	} {
		t.Run(name, func(t *testing.T) {
			msg, err := NewComposer(nil).Compose(a)
			require.NoError(t, err)
			assert.NotContains(t, msg.HTML, "Age:")
			assert.NotContains(t, msg.HTML, "Gender:")
		})
	}
}

func TestComposeEscapesInput(t *testing.T) {
	msg, err := NewComposer(nil).Compose(model.Appointment{
		Email: "a@example.com", Name: "<script>x</script>", Date: day(2025, time.June, 1),
		Time: "10:00", Address: "<b>1</b>\n2",
	})
	require.NoError(t, err)
	assert.NotContains(t, msg.HTML, "<script>")
	assert.Contains(t, msg.HTML, "&lt;script&gt;")
	assert.Contains(t, msg.HTML, "&lt;b&gt;1&lt;/b&gt;<br>2")
}

func TestComposeIsDeterministic(t *testing.T) {
	a := model.Appointment{Email: "a@example.com", Name: "Asha", Date: day(2025, time.June, 1), Time: "09:00", Address: "x\ny"}
	c := NewComposer(nil)
	m1, err := c.Compose(a)
	require.NoError(t, err)
	m2, err := c.Compose(a)
	require.NoError(t, err)
	assert.Equal(t, m1, m2)
	assert.Equal(t, 1, strings.Count(m1.HTML, "<br>"))
}
