package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"turtle-lang/internal/driver"

	"github.com/chzyer/readline"
)

// ---- ANSI colors ----

const (
	colorReset = "\033[0m"
	colorRed   = "\033[31m"
	colorGreen = "\033[32m"
	colorCyan  = "\033[36m"
	colorGray  = "\033[90m"
	colorBold  = "\033[1m"
)

// ---- repl command ----

func cmdRepl(cfg *driver.Config) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:            colorGreen + "draw> " + colorReset,
		HistoryFile:       cfg.REPL.HistoryFile,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "readline init failed: %v\n", err)
		os.Exit(1)
	}
	defer rl.Close()

	fmt.Fprintf(rl.Stdout(), "%s%sDrawing Interpreter - Interactive Mode%s\n", colorBold, colorCyan, colorReset)
	fmt.Fprintf(rl.Stdout(), "%sType 'help' for commands, 'exit' or 'quit' to leave%s\n\n", colorGray, colorReset)

	session := driver.NewSession(cfg)
	var accumulated strings.Builder
	braceDepth := 0

	for {
		if braceDepth > 0 {
			rl.SetPrompt(colorGray + "...   " + colorReset)
		} else {
			rl.SetPrompt(colorGreen + "draw> " + colorReset)
		}

		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				if braceDepth > 0 {
					// Cancel multi-line input
					accumulated.Reset()
					braceDepth = 0
					continue
				}
				fmt.Fprintf(rl.Stdout(), "\n%s(use 'exit' or Ctrl+D to quit)%s\n", colorGray, colorReset)
				continue
			}
			if err == io.EOF {
				fmt.Fprintln(rl.Stdout())
			}
			break
		}

		// Meta-commands, only outside multi-line input
		if braceDepth == 0 {
			switch strings.ToLower(strings.TrimSpace(line)) {
			case "exit", "quit", "q":
				fmt.Fprintln(rl.Stdout(), "Goodbye!")
				return
			case "help":
				fmt.Fprint(rl.Stdout(), helpText)
				continue
			case "clear":
				session.Engine().Clear()
				continue
			case "reset":
				session.Engine().Reset()
				continue
			}
		}

		braceDepth += strings.Count(line, "{") - strings.Count(line, "}")
		accumulated.WriteString(line)
		accumulated.WriteString("\n")

		if braceDepth > 0 {
			continue
		}
		braceDepth = 0

		source := accumulated.String()
		accumulated.Reset()

		if strings.TrimSpace(source) == "" {
			continue
		}

		ok, message := session.Execute(source)
		if !ok {
			fmt.Fprintf(rl.Stderr(), "%s%s%s\n", colorRed, message, colorReset)
		}
		// Success is silent; the drawing is the output.
	}
}

const helpText = `
Drawing Interpreter Commands:

DRAWING COMMANDS:
  forward(distance) or fd(distance)    - Move forward
  backward(distance) or bk(distance)   - Move backward
  left(angle) or lt(angle)             - Turn left (counter-clockwise)
  right(angle) or rt(angle)            - Turn right (clockwise)
  penup() or pu()                      - Lift pen
  pendown() or pd()                    - Lower pen
  goto(x, y)                           - Move to absolute position
  circle(radius)                       - Draw circle at current position
  circle(radius, x, y)                 - Draw circle at (x, y)
  rectangle(width, height)             - Draw rectangle
  rectangle(width, height, x, y)       - Draw rectangle at (x, y)
  line(x1, y1, x2, y2)                 - Draw line between two points
  polygon(x1, y1, x2, y2, ...)         - Draw polygon
  arc(width, height, [angle])          - Draw arc
  color("colorname")                   - Set pen color
  fill()                               - Enable filling
  nofill()                             - Disable filling
  width(n)                             - Set pen width
  clear()                              - Clear canvas
  reset()                              - Reset pen position and settings
  position() or pos()                  - Get current position (returns tuple)

CONTROL FLOW:
  if condition { statements }          - Conditional execution
  if condition { statements } else { statements }
  while condition { statements }       - Loop while condition is true
  for var = start to end { statements }
  for var = start to end step n { statements }

VARIABLES:
  var name = value                     - Declare variable
  let name = value                     - Declare and assign variable
  name = value                         - Assign to variable

FUNCTIONS:
  function name(param1, param2) { statements }
  return value                         - Return from function

OPERATORS:
  +, -, *, /, %, ^                     - Arithmetic
  ==, !=, <, >, <=, >=                 - Comparison
  and, or, not                         - Logical

BUILT-IN FUNCTIONS:
  sin(x), cos(x), tan(x)               - Trigonometry (degrees)
  asin(x), acos(x), atan(x)            - Inverse trig (degrees)
  sqrt(x), abs(x)                      - Math functions
  floor(x), ceil(x), round(x)          - Rounding
  min(a, b), max(a, b)                 - Min/Max
  random()                             - Random number [0, 1)
  pi(), e()                            - Constants

REPL COMMANDS:
  help                                 - Show this help
  clear                                - Clear the canvas
  reset                                - Reset pen state
  exit, quit                           - Leave the REPL
`
