// Package domain holds the core entities of the Eisenhower matrix backend:
// tasks with their cached quadrant classification, user accounts with roles,
// and the validation rules both must satisfy. Nothing here touches a
// transport or a database; derived urgency is exposed through accessor
// methods so storage never has to persist it.
package domain
