package parts

import (
	"log"
	"os"
)

// GetCriticalCSS reads the critical CSS file and returns it as a string.
func GetCriticalCSS() (string, error) {
	css, err := os.ReadFile("assets/app.min.css")
	if err != nil {
		log.Println("Critical CSS error:", err)
		return "", err
	}
	return string(css), nil
}
