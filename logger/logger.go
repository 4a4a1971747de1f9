package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// New crea el logger del bot. En debug escribe a consola con nivel Debug;
// si no, nivel Info a consola y a logs/bot.log.
func New(debug bool) (*logrus.Logger, error) {
	log := logrus.New()

	// Formato con timestamps
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if debug {
		log.SetOutput(os.Stdout)
		log.SetLevel(logrus.DebugLevel)
		return log, nil
	}

	// Crear directorio logs/ si no existe
	if err := os.MkdirAll("logs", 0755); err != nil {
		return nil, err
	}
	logFile, err := os.OpenFile(filepath.Join("logs", "bot.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, err
	}
	log.SetOutput(io.MultiWriter(os.Stdout, logFile))
	log.SetLevel(logrus.InfoLevel)
	return log, nil
}

// CronLogger adapta logrus a la interfaz Logger de robfig/cron.
type CronLogger struct {
	Log logrus.FieldLogger
}

func (l CronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.Log.WithFields(fields(keysAndValues)).Debug(msg)
}

func (l CronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.Log.WithFields(fields(keysAndValues)).WithError(err).Error(msg)
}

func fields(keysAndValues []interface{}) logrus.Fields {
	f := logrus.Fields{}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		f[key] = keysAndValues[i+1]
	}
	return f
}
