package feedback

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/cyclepass/station/internal/models"
)

// Terminal is the station's input side: bike selection and return intent.
type Terminal interface {
	// SelectBike presents the offered set and returns the chosen bike id.
	SelectBike(bikes []models.Bike) (int64, error)
	// ConfirmReturn asks whether this card presentation is a return.
	ConfirmReturn() (bool, error)
}

const timeLayout = "2006-01-02 15:04:05"

// Console is the operator console at the rack. It implements both Notifier
// (status lines, lock/buzzer signals) and Terminal (bike selection, return
// confirmation).
type Console struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewScanner(in), out: out}
}

func (c *Console) CardDetected(token string) {
	fmt.Fprintf(c.out, "\nCard detected: %s\n", token)
}

func (c *Console) Balance(balance int64) {
	fmt.Fprintf(c.out, "Current balance: %d credits\n", balance)
}

func (c *Console) InsufficientBalance(balance, required int64) {
	fmt.Fprintf(c.out, "Insufficient balance (minimum %d credits)\n", required)
	fmt.Fprintln(c.out, "BUZZER: ON")
}

func (c *Console) UnregisteredCard(token string) {
	fmt.Fprintln(c.out, "User not registered")
	fmt.Fprintln(c.out, "BUZZER: ON")
}

func (c *Console) NoBikesAvailable() {
	fmt.Fprintln(c.out, "No bikes available")
}

func (c *Console) InvalidSelection(bikeID int64) {
	fmt.Fprintln(c.out, "Invalid bike selection")
}

func (c *Console) RentalStarted(bike models.Bike, at time.Time) {
	fmt.Fprintf(c.out, "Bike %s rented successfully at %s\n", bike.Name, at.Format(timeLayout))
	fmt.Fprintln(c.out, "SOLENOID LOCK: OPENED")
}

func (c *Console) RentalActive(bikeID int64, remaining time.Duration) {
	fmt.Fprintf(c.out, "Bike already rented. %.1f hours remaining\n", remaining.Hours())
}

func (c *Console) AutoDeducted(bikeID int64, amount int64) {
	fmt.Fprintf(c.out, "Auto-deducted %d credits for extended rental\n", amount)
}

func (c *Console) BikeReturned(bikeName string, total int64, at time.Time) {
	fmt.Fprintf(c.out, "Bike %s returned at %s\n", bikeName, at.Format(timeLayout))
	fmt.Fprintf(c.out, "Total rental cost: %d credits\n", total)
	fmt.Fprintln(c.out, "SOLENOID LOCK: CLOSED")
}

// SelectBike lists the offered bikes and reads a bike id from the console.
func (c *Console) SelectBike(bikes []models.Bike) (int64, error) {
	fmt.Fprintln(c.out, "\nAvailable Bikes:")
	for _, bike := range bikes {
		fmt.Fprintf(c.out, "%d: %s\n", bike.ID, bike.Name)
	}
	fmt.Fprint(c.out, "Enter bike ID to rent: ")

	line, err := c.readLine()
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(line, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("not a bike id: %q", line)
	}
	return id, nil
}

// ConfirmReturn treats anything but an explicit yes as "keep renting".
func (c *Console) ConfirmReturn() (bool, error) {
	fmt.Fprint(c.out, "Return bike? [y/N]: ")
	line, err := c.readLine()
	if err != nil {
		return false, err
	}
	switch strings.ToLower(line) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

func (c *Console) readLine() (string, error) {
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(c.in.Text()), nil
}
