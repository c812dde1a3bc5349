// Package overdue runs the background sweep that marks tasks whose due date
// has passed as "Atrasada". Only pending and in-progress tasks are touched;
// completed and abandoned tasks keep their status.
package overdue
