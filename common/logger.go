package common

import (
	"github.com/KristinaGagalova/hpc-performance/status"
)

// MT: Constant after initialization; thread-safe
var Log status.Logger = status.Default()
