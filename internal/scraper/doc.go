// Package scraper downloads published report files and the HTML index pages
// that list them.
//
// Fetch issues a GET with the tool's User-Agent and treats anything but
// 200 OK as a FetchError. FetchIndex parses an index page with goquery and
// pairs report titles with their spreadsheet links in document order.
package scraper
