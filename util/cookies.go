package util

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/aki237/nscjar"
)

var (
	cookiesCache  = make(map[string][]*http.Cookie)
	cookiesCacheM sync.Mutex
)

// ParseCookieFile loads a Netscape cookie jar from the cookies directory.
// Parsed files are cached per name for the process lifetime.
func ParseCookieFile(fileName string) ([]*http.Cookie, error) {
	cookiesCacheM.Lock()
	defer cookiesCacheM.Unlock()

	cachedCookies, ok := cookiesCache[fileName]
	if ok {
		return cachedCookies, nil
	}
	cookiePath := filepath.Join("cookies", fileName)
	cookieFile, err := os.Open(cookiePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open cookie file: %w", err)
	}
	defer cookieFile.Close()

	var parser nscjar.Parser
	cookies, err := parser.Unmarshal(cookieFile)
	if err != nil {
		return nil, fmt.Errorf("failed to parse cookie file: %w", err)
	}
	cookiesCache[fileName] = cookies
	return cookies, nil
}
