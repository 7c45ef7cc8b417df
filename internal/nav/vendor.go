package nav

// Routes served by the dashboard screens.
const (
	RouteDashboard    = "/dashboard/default"
	RouteCustomerList = "/apps/customer/customer-list"
	RouteAddProduct   = "/apps/e-commerce/add-new-product"
	RouteProductList  = "/apps/e-commerce/product-list"
	RouteInvoiceNew   = "/apps/invoice/create"
	RouteInvoiceList  = "/apps/invoice/list"
	RouteCharts       = "/widget/chart"
)

// VendorMenu returns the built-in vendor menu.
func VendorMenu() Menu {
	return Menu{Items: []Item{
		{
			ID:    "group-widget",
			Title: "Vendor",
			Kind:  KindGroup,
			Icon:  "widgets",
			Children: []Item{
				{ID: "dashboard", Title: "Dashboard", Kind: KindItem, URL: RouteDashboard, Icon: "statistics"},
				{ID: "vendorRegistration", Title: "Vendor Registration", Kind: KindItem, URL: RouteCustomerList, Icon: "statistics"},
				{
					ID:    "productRegistration",
					Title: "Product Registration",
					Kind:  KindCollapse,
					Icon:  "customer",
					Children: []Item{
						{ID: "addProduct", Title: "Add Product", Kind: KindItem, URL: RouteAddProduct},
						{ID: "productlist", Title: "Product List", Kind: KindItem, URL: RouteProductList},
					},
				},
				{
					ID:    "quoteManagement",
					Title: "Quote Management",
					Kind:  KindCollapse,
					Icon:  "customer",
					Children: []Item{
						{ID: "quoteGen", Title: "Quote Generation", Kind: KindItem, URL: RouteInvoiceNew},
						{ID: "quoteSucc", Title: "Quote Success", Kind: KindItem, URL: RouteInvoiceList},
					},
				},
				{ID: "payResponse", Title: "Payment Response", Kind: KindItem, URL: RouteCharts, Icon: "pay"},
			},
		},
	}}
}
