package battlelog

import "github.com/sirupsen/logrus"

func (arc *Archiver) log(args ...interface{}) {
	if arc.EnableLog {
		logrus.Println(args...)
	}
}

func (arc *Archiver) logf(format string, args ...interface{}) {
	if arc.EnableLog {
		logrus.Printf(format, args...)
	}
}

func (arc *Archiver) logVerbose(args ...interface{}) {
	if arc.EnableVerboseLog {
		logrus.Println(args...)
	}
}
