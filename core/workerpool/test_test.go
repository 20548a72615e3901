package workerpool_test

import (
	"github.com/usnistgov/parhist/core/testenv"
)

var makeAR = testenv.MakeAR
