package render

// Currency prefixes amounts in the UI.
const Currency = "₹"

// wideCell caps free text columns in the list views.
const wideCell = 32
