// Package msf converts between the minute/second/frame timecodes used by
// audio CD addressing and flat frame indexes.
//
// A Timecode is what the drive reports in the table of contents and what it
// accepts as the start of an audio read. A Frame is a signed index relative to
// the first addressable audio frame (00:02:00), suitable for length and
// progress arithmetic. Frame values are never sent to the drive.
package msf
