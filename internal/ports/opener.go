package ports

// URLOpener defines the interface for opening links in the system browser
type URLOpener interface {
	// OpenURL opens the given http(s) URL
	OpenURL(url string) error
}
