package compose

import "github.com/ayvaroff/ayvaroff.github.io/layout"

const (
	PageMargin       = 13 // mm
	DefaultFontSize  = 11 // pt
	LineHeightFactor = 1.2

	ColorBlack     = "#000000"
	ColorIndigoDye = "#284b63"
	ColorJet       = "#353535"
)

var (
	nameStyle = layout.Style{FontStyle: layout.FontBold, FontSize: 18, Color: ColorBlack}

	sectionTitleStyle = layout.Style{FontStyle: layout.FontBold, FontSize: 14, Color: ColorIndigoDye}

	// bodyStyle is used for paragraphs and wrapped lists.
	bodyStyle = layout.Style{FontStyle: layout.FontNormal, FontSize: DefaultFontSize, Color: ColorJet}

	entryHeaderStyle = layout.Style{FontStyle: layout.FontBold, FontSize: 11, Color: ColorBlack}

	// metaStyle is used for dates and degrees.
	metaStyle = layout.Style{FontStyle: layout.FontNormal, FontSize: 10, Color: ColorJet}

	labelStyle = layout.Style{FontStyle: layout.FontBold, FontSize: DefaultFontSize, Color: ColorBlack}
	valueStyle = layout.Style{FontStyle: layout.FontNormal, Color: ColorJet}
)
