package menu

// Application is a full-screen interactive page. It participates in the
// navigation stack like a menu but owns its own content instead of an item
// list. Scroll buttons are forwarded to it while it is on top; GoBack
// returning false lets the engine close it.
type Application interface {
	Title() Field[string]
	GoUp()
	GoDown()
	GoBack() bool
}

// Lifecycle is implemented by applications that want to be told when they
// are pushed onto and removed from the stack. The renderer collaborator is
// notified independently of whether the application implements this.
type Lifecycle interface {
	OnOpen()
	OnClose()
}
