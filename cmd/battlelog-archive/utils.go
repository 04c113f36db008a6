package main

import (
	"bufio"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

func parseCookiesFile(path string) (map[string][]*http.Cookie, error) {
	// Open file
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// Create map to store cookies
	mapCookies := make(map[string][]*http.Cookie)

	// Create scanner
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		parts := strings.Split(scanner.Text(), "\t")
		if len(parts) != 7 {
			continue
		}

		httpOnly := strings.HasPrefix(parts[0], "#HttpOnly_")
		unixTime, _ := strconv.ParseInt(parts[4], 10, 64)
		domainName := parts[0]

		if httpOnly {
			domainName = strings.TrimPrefix(domainName, "#HttpOnly_")
		}

		mapCookies[domainName] = append(mapCookies[domainName], &http.Cookie{
			Name:     parts[5],
			Value:    parts[6],
			Path:     parts[2],
			Domain:   domainName,
			Expires:  time.Unix(unixTime, 0),
			Secure:   parts[3] == "TRUE",
			HttpOnly: httpOnly,
		})
	}

	return mapCookies, scanner.Err()
}

// cookiesForHost collects the cookies whose domain matches hostname or
// any of its parent domains, in both Netscape domain notations.
func cookiesForHost(cookiesMap map[string][]*http.Cookie, hostname string) []*http.Cookie {
	var cookies []*http.Cookie

	parts := strings.Split(hostname, ".")
	for i := 0; i < len(parts)-1; i++ {
		domainName := strings.Join(parts[i:], ".")
		cookies = append(cookies, cookiesMap[domainName]...)
		cookies = append(cookies, cookiesMap["."+domainName]...)
	}

	return cookies
}
