package realtime

// Notifications is the application-wide notification hub. main starts
// its Run loop; the notification controller pushes into it and the
// websocket handler subscribes clients to it.
var Notifications = NewHub()
