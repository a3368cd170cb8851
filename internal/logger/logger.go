package logger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/fatih/color"
)

var (
	isDebug = false

	critColor    = color.RGB(255, 0, 0).SprintFunc()
	debugColor   = color.RGB(255, 165, 0).SprintFunc()
	warningColor = color.RGB(255, 255, 0).SprintFunc()
	eventColor   = color.RGB(0, 255, 0).SprintFunc()
)

func InitLogger(debug bool) {
	isDebug = debug

	log.SetPrefix("[BOT] ")
	log.SetFlags(log.Ldate | log.Ltime | log.Lmsgprefix)
}

func Info(v ...interface{}) {
	log.Print("[INFO] ", fmt.Sprintln(v...))
}

func Event(v ...interface{}) {
	log.Print(eventColor("[EVENT] ", fmt.Sprintln(v...)))
}

func Warning(v ...interface{}) {
	log.Print(warningColor("[WARNING] ", fmt.Sprintln(v...)))
}

// Debug prints only with -debug; non-string values are pretty-printed as JSON.
func Debug(v ...interface{}) {
	if !isDebug {
		return
	}

	message := new(bytes.Buffer)

	for _, item := range v {
		s, ok := item.(string)
		if ok {
			_, _ = fmt.Fprintf(message, "%s ", s)
		} else {
			b, _ := json.MarshalIndent(item, "", " ")
			_, _ = fmt.Fprintf(message, "%s ", string(b))
		}
	}

	log.Print(debugColor("[DEBUG] ", message))
}

// Crit logs the error and terminates the process.
func Crit(v ...interface{}) {
	log.Printf(critColor("Critical error: %s"), v)
	time.Sleep(5 * time.Second)
	os.Exit(1)
}
