// Package session owns the client's view of which conversation is current
// and the cached list of known conversations.
//
// The backend has no endpoint that lists conversations, so every conversation
// created or loaded through this client is remembered in the config file and
// shown newest first.
//
// All mutation goes through a Session's methods. Backend calls are made
// without holding the lock; the cached state is only updated once a call has
// succeeded, so a failed request never leaves the list half-changed.
package session
