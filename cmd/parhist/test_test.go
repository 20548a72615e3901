package main

import (
	"github.com/usnistgov/parhist/core/testenv"
)

var makeAR = testenv.MakeAR
