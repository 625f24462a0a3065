// Package patient reads the MHLW patient-status and hospital-bed reports.
//
// The ministry publishes one workbook per report timestamp and lists them on
// an index page. Update discovers the workbooks, downloads the ones not yet
// on disk and records timestamp → URL in a storage.Store. Builder then reads
// the 公表資料 sheet of each stored report, one row per prefecture, resolving
// metric columns through a two-version layout that changed on 2021-06-02.
package patient
