package reader

import (
	"bufio"
	"fmt"
	"io"

	serial "go.bug.st/serial.v1"
	"go.uber.org/zap"
)

// Serial reads card tokens from an RFID reader on a serial port. The reader
// firmware emits one newline-terminated hex token per card tap. A goroutine
// owns the blocking port reads and feeds a small buffered channel, so Poll
// stays non-blocking for the session loop.
type Serial struct {
	port   io.ReadCloser
	tokens chan string
	logger *zap.Logger
}

// NewSerial opens the reader port and starts scanning for tokens.
func NewSerial(portName string, baudRate int, logger *zap.Logger) (*Serial, error) {
	port, err := serial.Open(portName, &serial.Mode{BaudRate: baudRate})
	if err != nil {
		return nil, fmt.Errorf("opening reader port %s: %w", portName, err)
	}
	s := newSerial(port, logger)
	logger.Info("card reader connected",
		zap.String("port", portName),
		zap.Int("baud_rate", baudRate))
	return s, nil
}

func newSerial(port io.ReadCloser, logger *zap.Logger) *Serial {
	s := &Serial{
		port:   port,
		tokens: make(chan string, 4),
		logger: logger,
	}
	go s.scan()
	return s
}

// Poll returns the next pending token without blocking.
func (s *Serial) Poll() (string, bool) {
	select {
	case token, ok := <-s.tokens:
		return token, ok
	default:
		return "", false
	}
}

func (s *Serial) Close() error {
	return s.port.Close()
}

func (s *Serial) scan() {
	defer close(s.tokens)
	scanner := bufio.NewScanner(s.port)
	for scanner.Scan() {
		token, err := ParseToken(scanner.Text())
		if err != nil {
			s.logger.Debug("dropping malformed frame", zap.Error(err))
			continue
		}
		select {
		case s.tokens <- token:
		default:
			// Backlog of unconsumed taps; drop rather than block the port.
			s.logger.Warn("token buffer full, dropping tap", zap.String("token", token))
		}
	}
	if err := scanner.Err(); err != nil {
		s.logger.Error("card reader stream ended", zap.Error(err))
	}
}
