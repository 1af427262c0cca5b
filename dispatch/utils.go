package dispatch

import "time"

var timeNow = time.Now
