package shopify

const productsQuery = `
query getProducts($first: Int!, $after: String, $query: String, $sortKey: ProductSortKeys!, $reverse: Boolean!) {
    products(first: $first, after: $after, query: $query, sortKey: $sortKey, reverse: $reverse) {
        edges {
            node {
                id
                title
                handle
                description
                vendor
                productType
                tags
                createdAt
                updatedAt
                images(first: 5) {
                    edges {
                        node {
                            id
                            url
                            altText
                            width
                            height
                        }
                    }
                }
                variants(first: 10) {
                    edges {
                        node {
                            id
                            title
                            price {
                                amount
                                currencyCode
                            }
                            compareAtPrice {
                                amount
                                currencyCode
                            }
                            availableForSale
                            quantityAvailable
                            selectedOptions {
                                name
                                value
                            }
                        }
                    }
                }
                collections(first: 5) {
                    edges {
                        node {
                            id
                            title
                            handle
                        }
                    }
                }
            }
            cursor
        }
        pageInfo {
            hasNextPage
            hasPreviousPage
            startCursor
            endCursor
        }
    }
}`

const productByHandleQuery = `
query getProduct($handle: String!) {
    productByHandle(handle: $handle) {
        id
        title
        handle
        description
        descriptionHtml
        vendor
        productType
        tags
        createdAt
        updatedAt
        images(first: 10) {
            edges {
                node {
                    id
                    url
                    altText
                    width
                    height
                }
            }
        }
        variants(first: 100) {
            edges {
                node {
                    id
                    title
                    price {
                        amount
                        currencyCode
                    }
                    compareAtPrice {
                        amount
                        currencyCode
                    }
                    availableForSale
                    quantityAvailable
                    selectedOptions {
                        name
                        value
                    }
                    image {
                        id
                        url
                        altText
                    }
                }
            }
        }
        collections(first: 10) {
            edges {
                node {
                    id
                    title
                    handle
                    description
                }
            }
        }
        seo {
            title
            description
        }
    }
}`

const collectionsQuery = `
query getCollections($first: Int!, $after: String, $query: String) {
    collections(first: $first, after: $after, query: $query) {
        edges {
            node {
                id
                title
                handle
                description
                descriptionHtml
                image {
                    id
                    url
                    altText
                    width
                    height
                }
                products(first: 1) {
                    edges {
                        node {
                            id
                        }
                    }
                }
                updatedAt
            }
            cursor
        }
        pageInfo {
            hasNextPage
            hasPreviousPage
            startCursor
            endCursor
        }
    }
}`

const collectionByHandleQuery = `
query getCollection($handle: String!) {
    collectionByHandle(handle: $handle) {
        id
        title
        handle
        description
        descriptionHtml
        image {
            id
            url
            altText
            width
            height
        }
        products(first: 50) {
            edges {
                node {
                    id
                    title
                    handle
                    images(first: 1) {
                        edges {
                            node {
                                id
                                url
                                altText
                            }
                        }
                    }
                    variants(first: 1) {
                        edges {
                            node {
                                price {
                                    amount
                                    currencyCode
                                }
                                compareAtPrice {
                                    amount
                                    currencyCode
                                }
                            }
                        }
                    }
                }
            }
        }
        updatedAt
    }
}`
