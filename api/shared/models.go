/* models.go
 * This file contains the structs that are shared between sub packages
 * Authors: Zachary Bower
 */

package shared

// User identifies the Discord user acting on a command or button press
type User struct {
	UserID   string
	Username string
}
