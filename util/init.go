package util

import (
	"fundflow/global"
)

var log = global.Log
