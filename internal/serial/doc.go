// Package serial opens raw tty serial ports for the snapshot link.
package serial
