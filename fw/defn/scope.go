/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package defn

// Scope indicates the scope of a face
type Scope int

const (
	// Unknown indicates that the scope is unknown.
	Unknown Scope = -1
	// NonLocal indicates the face is non-local (to another forwarder).
	NonLocal Scope = 0
	// Local indicates the face is local (to an application).
	Local Scope = 1
)

func (s Scope) String() string {
	switch s {
	case NonLocal:
		return "non-local"
	case Local:
		return "local"
	default:
		return "unknown"
	}
}

// LinkType indicates what type of link a face is.
type LinkType int

const (
	// PointToPoint is a face with one remote endpoint.
	PointToPoint LinkType = 0
	// MultiAccess is a face that communicates with a multicast group.
	MultiAccess LinkType = 1
	// AdHoc communicates on a wireless ad-hoc network.
	AdHoc LinkType = 2
)

func (l LinkType) String() string {
	switch l {
	case PointToPoint:
		return "point-to-point"
	case MultiAccess:
		return "multi-access"
	case AdHoc:
		return "ad-hoc"
	default:
		return "unknown"
	}
}
