package driven

// LinkOpener hands a link to the platform so it opens in a new
// browser tab or window. Open returns once the launch has been started;
// it does not wait for the browser.
type LinkOpener interface {
	Open(link string) error
}
