package smallbuf

import (
	"github.com/sirupsen/logrus"
)

// logger tags pool lifecycle logs with the package name.
var logger = logrus.WithField("package", "smallbuf")
