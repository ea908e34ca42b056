package primitives

import "fmt"

// unquoteJSONString strips the surrounding quotes from a JSON string token.
func unquoteJSONString(b []byte) (string, error) {
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return "", fmt.Errorf("primitives: expected quoted JSON string, got %q", string(b))
	}
	return string(b[1 : len(b)-1]), nil
}

func errLen(name string, want, got int) error {
	return fmt.Errorf("primitives: %s: expected %d bytes, got %d", name, want, got)
}
