// Package content interprets publication HTML into schedule records.
//
// Meeting Workbook week documents are reduced to an @-separated source
// sequence whose segment positions map onto the schedule fields; Watchtower
// issues pair a table-of-contents document with per-study article bodies.
// The traversal rules here track the publication HTML layout as shipped
// since mid-2022 and intentionally mirror that layout's quirks.
package content
