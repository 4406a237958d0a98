package chat

import (
	"fmt"
	"time"
)

const (
	serverLabel = "Server"

	fullNotice     = "server is full, try again later"
	shutdownNotice = "server is shutting down, bye"
)

// formatMessage - formats chat line without trailing EOL.
func formatMessage(t time.Time, author, body string) string {
	return fmt.Sprintf("[%s] %s says: %s", t.Format("15:04:05"), author, body)
}

// serverMessage - formats chat line authored by server operator.
func serverMessage(t time.Time, body string) string {
	return formatMessage(t, serverLabel, body)
}

// wire - makes network payload from chat line.
func wire(line string) string {
	return line + "\n"
}
