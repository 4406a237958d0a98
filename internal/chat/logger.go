package chat

// Logger - interface for logging chat events, *log.Logger is suitable.
type Logger interface {
	Println(v ...interface{})
}

type discardLogger struct{}

func (discardLogger) Println(...interface{}) {}

func logInfo(l Logger, v ...interface{}) {
	l.Println(v...)
}

func logError(l Logger, v ...interface{}) {
	l.Println(append([]interface{}{"ERR"}, v...)...)
}
