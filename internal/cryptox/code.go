package cryptox

import "crypto/rand"

const (
	accessCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	accessCodeLength   = 6

	// largest multiple of len(accessCodeAlphabet) that fits in a byte
	accessCodeCutoff = 256 - 256%len(accessCodeAlphabet)
)

// GenerateAccessCode returns a 6 character code. Every position is drawn
// uniformly and independently from A-Z, a-z and 0-9.
func GenerateAccessCode() string {
	code := make([]byte, 0, accessCodeLength)
	buf := make([]byte, accessCodeLength*2)
	for len(code) < accessCodeLength {
		_, _ = rand.Read(buf)
		for _, b := range buf {
			if int(b) >= accessCodeCutoff {
				continue
			}
			code = append(code, accessCodeAlphabet[int(b)%len(accessCodeAlphabet)])
			if len(code) == accessCodeLength {
				break
			}
		}
	}
	return string(code)
}
