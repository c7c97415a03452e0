// Copyright 2023 uhppoted@twyst.co.za. All rights reserved.
// Use of this source code is governed by an MIT-style license
// that can be found in the LICENSE file.

/*
Package parent-sheets keeps a set of child Google Sheets spreadsheets in line with a template (parent) spreadsheet.

parent-sheets can be used from the command line or run from a cron job. The child spreadsheets live in a single
Google Drive folder and the settings (user names, admin e-mails, folder ID, title suffix and whether protections
are propagated) are stored with the template spreadsheet as developer metadata.

parent-sheets supports the following commands:

  - authorise, to authorise application access to Google Sheets and Drive
  - show, set, protections and clear, to manage the settings
  - create, to create a child spreadsheet for each user name
  - update-range, to copy the named range(s) containing a cell to every child spreadsheet
  - update-sheet, to replace a sheet in every child spreadsheet
  - update-all, to replace every sheet in every child spreadsheet
*/
package sheets
